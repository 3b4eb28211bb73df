package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleEmpleado = "empleado"
)

// Estados de un empleado.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User representa un empleado del negocio con acceso al sistema.
// Los empleados no se borran: se pasan a inactive con fecha de baja,
// para conservar la atribución en las transacciones históricas.
type User struct {
	ID            string
	Name          string
	Email         string
	CPF           string // documento del empleado
	PasswordHash  string // bcrypt, nunca plano en dominio después de persistir
	Role          string // admin, empleado
	Status        string // active, inactive
	AdmissionDate time.Time
	DismissalDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive indica si el empleado puede iniciar sesión.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
