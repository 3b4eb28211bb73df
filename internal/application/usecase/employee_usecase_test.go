package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fruteria-api/internal/application/dto"
	"github.com/jhoicas/fruteria-api/internal/domain"
	"github.com/jhoicas/fruteria-api/internal/domain/entity"
)

// fakeUserRepo fake en memoria del puerto UserRepository.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Count() (int, error) {
	return len(r.users), nil
}

func validCreate() dto.CreateEmployeeRequest {
	return dto.CreateEmployeeRequest{
		Name: "Carlos Gómez", Email: "carlos@fruteria.local",
		Password: "cambiame123", Role: entity.RoleEmpleado,
	}
}

func TestEmployeeCreate_OK(t *testing.T) {
	uc := NewEmployeeUseCase(newFakeUserRepo())

	out, err := uc.Create(validCreate())

	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmpleado, out.Role)
	assert.Equal(t, entity.StatusActive, out.Status)
	assert.False(t, out.AdmissionDate.IsZero())
}

func TestEmployeeCreate_PasswordCorto(t *testing.T) {
	uc := NewEmployeeUseCase(newFakeUserRepo())

	in := validCreate()
	in.Password = "corta12" // 7 caracteres, uno menos que el mínimo

	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEmployeeCreate_EmailDuplicado(t *testing.T) {
	uc := NewEmployeeUseCase(newFakeUserRepo())

	_, err := uc.Create(validCreate())
	require.NoError(t, err)

	_, err = uc.Create(validCreate())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestEmployeeUpdate_BajaExigeFecha(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewEmployeeUseCase(repo)

	created, err := uc.Create(validCreate())
	require.NoError(t, err)

	_, err = uc.Update(created.ID, dto.UpdateEmployeeRequest{
		Name: created.Name, Role: created.Role, Status: entity.StatusInactive,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	dismissal := time.Now()
	out, err := uc.Update(created.ID, dto.UpdateEmployeeRequest{
		Name: created.Name, Role: created.Role, Status: entity.StatusInactive,
		DismissalDate: &dismissal,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInactive, out.Status)
	require.NotNil(t, out.DismissalDate)

	// Reactivar limpia la fecha de baja.
	out, err = uc.Update(created.ID, dto.UpdateEmployeeRequest{
		Name: created.Name, Role: created.Role, Status: entity.StatusActive,
	})
	require.NoError(t, err)
	assert.Nil(t, out.DismissalDate)
}
