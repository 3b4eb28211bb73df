package dto

import "time"

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token JWT + datos del usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterRequest body para POST /api/auth/register (bootstrap del primer admin).
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	CPF      string `json:"cpf"`
	Password string `json:"password"`
}

// CreateEmployeeRequest body para POST /api/employees (solo admin).
type CreateEmployeeRequest struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	CPF           string    `json:"cpf"`
	Password      string    `json:"password"`
	Role          string    `json:"role"`
	AdmissionDate time.Time `json:"admission_date"`
}

// UpdateEmployeeRequest body para PUT /api/employees/:id.
// Status "inactive" requiere DismissalDate; volver a "active" la limpia.
type UpdateEmployeeRequest struct {
	Name          string     `json:"name"`
	CPF           string     `json:"cpf"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	DismissalDate *time.Time `json:"dismissal_date,omitempty"`
}

// UserResponse representación HTTP de un empleado (sin hash).
type UserResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	CPF           string     `json:"cpf"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	AdmissionDate time.Time  `json:"admission_date"`
	DismissalDate *time.Time `json:"dismissal_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
