package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/fruteria-api/internal/application/dto"
	"github.com/jhoicas/fruteria-api/internal/domain"
	"github.com/jhoicas/fruteria-api/internal/domain/entity"
	"github.com/jhoicas/fruteria-api/internal/domain/repository"
	"github.com/jhoicas/fruteria-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro inicial y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterFirstAdmin crea el primer usuario del sistema con rol admin.
// Solo funciona con la tabla de usuarios vacía; después, las altas pasan por
// el módulo de empleados (protegido).
func (uc *AuthUseCase) RegisterFirstAdmin(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Name == "" || in.Email == "" || len(in.Password) < domain.MinPasswordLen {
		return nil, domain.ErrInvalidInput
	}
	count, err := uc.userRepo.Count()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrForbidden
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Email:         in.Email,
		CPF:           in.CPF,
		PasswordHash:  string(hash),
		Role:          entity.RoleAdmin,
		Status:        entity.StatusActive,
		AdmissionDate: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return &dto.UserResponse{
		ID: user.ID, Name: user.Name, Email: user.Email, CPF: user.CPF,
		Role: user.Role, Status: user.Status,
		AdmissionDate: user.AdmissionDate,
		CreatedAt:     user.CreatedAt, UpdatedAt: user.UpdatedAt,
	}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Los empleados inactivos no pueden iniciar sesión.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID: user.ID, Name: user.Name, Email: user.Email, CPF: user.CPF,
			Role: user.Role, Status: user.Status,
			AdmissionDate: user.AdmissionDate, DismissalDate: user.DismissalDate,
			CreatedAt: user.CreatedAt, UpdatedAt: user.UpdatedAt,
		},
	}, nil
}
