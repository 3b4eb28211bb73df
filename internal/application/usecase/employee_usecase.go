package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/fruteria-api/internal/application/dto"
	"github.com/jhoicas/fruteria-api/internal/domain"
	"github.com/jhoicas/fruteria-api/internal/domain/entity"
	"github.com/jhoicas/fruteria-api/internal/domain/repository"
)

// EmployeeUseCase administración de empleados (solo admin).
// Los empleados no se borran: la baja los pasa a inactive con fecha, para
// conservar la atribución de sus transacciones históricas.
type EmployeeUseCase struct {
	repo repository.UserRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.UserRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

func validRole(r string) bool {
	return r == entity.RoleAdmin || r == entity.RoleEmpleado
}

// Create da de alta un empleado con password hasheado (bcrypt).
func (uc *EmployeeUseCase) Create(in dto.CreateEmployeeRequest) (*dto.UserResponse, error) {
	if in.Name == "" || in.Email == "" || len(in.Password) < domain.MinPasswordLen || !validRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	admission := in.AdmissionDate
	if admission.IsZero() {
		admission = now
	}
	user := &entity.User{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Email:         in.Email,
		CPF:           in.CPF,
		PasswordHash:  string(hash),
		Role:          in.Role,
		Status:        entity.StatusActive,
		AdmissionDate: admission,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Update modifica perfil, rol y estado. Pasar a inactive exige fecha de baja;
// reactivar la limpia.
func (uc *EmployeeUseCase) Update(id string, in dto.UpdateEmployeeRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name == "" || !validRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	switch in.Status {
	case entity.StatusActive:
		user.DismissalDate = nil
	case entity.StatusInactive:
		if in.DismissalDate == nil {
			return nil, domain.ErrInvalidInput
		}
		user.DismissalDate = in.DismissalDate
	default:
		return nil, domain.ErrInvalidInput
	}
	user.Name = in.Name
	user.CPF = in.CPF
	user.Role = in.Role
	user.Status = in.Status
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un empleado por ID.
func (uc *EmployeeUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// List lista empleados con paginación.
func (uc *EmployeeUseCase) List(page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		CPF:           u.CPF,
		Role:          u.Role,
		Status:        u.Status,
		AdmissionDate: u.AdmissionDate,
		DismissalDate: u.DismissalDate,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
