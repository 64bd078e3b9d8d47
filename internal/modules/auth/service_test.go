package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"silab/internal/domain"
	"silab/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type fakeIssuer struct{}

func (fakeIssuer) GenerateToken(u *domain.User) (string, error) { return "token-for-" + u.Email, nil }

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	assert.NoError(t, err)

	admin := &domain.User{
		ID:           1,
		Email:        "admin@lab.test",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}

	t.Run("success", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "admin@lab.test").Return(admin, nil)
		users.On("TouchLastLogin", mock.Anything, int64(1)).Return(nil)

		svc := NewService(users, fakeIssuer{})
		res, err := svc.Login(context.Background(), "admin@lab.test", "rahasia")

		assert.NoError(t, err)
		assert.Equal(t, "token-for-admin@lab.test", res.Token)
		assert.Equal(t, domain.RoleAdmin, res.User.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "admin@lab.test").Return(admin, nil)

		svc := NewService(users, fakeIssuer{})
		_, err := svc.Login(context.Background(), "admin@lab.test", "salah")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "ghost@lab.test").Return(nil, repository.ErrNotFound)

		svc := NewService(users, fakeIssuer{})
		_, err := svc.Login(context.Background(), "ghost@lab.test", "whatever")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, domain.RoleAdmin.CanManageRooms())
	assert.True(t, domain.RoleAdmin.CanApproveBookings())
	assert.True(t, domain.RoleAdmin.CanManageUsers())

	assert.False(t, domain.RoleTechnician.CanManageRooms())
	assert.True(t, domain.RoleTechnician.CanApproveBookings())
	assert.True(t, domain.RoleTechnician.CanManageLoans())
	assert.False(t, domain.RoleTechnician.CanManageUsers())

	assert.False(t, domain.RoleMember.CanApproveBookings())
	assert.False(t, domain.RoleMember.CanManageLoans())
}
