package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"silab/internal/domain"
	"silab/internal/repository"
)

type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	e.ID = 9
	return args.Error(0)
}

func (m *MockEquipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEquipmentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

func TestService_Create_DefaultsToGoodAndAvailable(t *testing.T) {
	repo := new(MockEquipmentRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo)
	e, err := svc.Create(context.Background(), UpsertRequest{
		Name: "Projector Epson X1",
		Code: "FTI-PRJ-001",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ConditionGood, e.Condition)
	assert.True(t, e.Available)
}

func TestService_Create_RejectsUnknownCondition(t *testing.T) {
	svc := NewService(new(MockEquipmentRepository))

	_, err := svc.Create(context.Background(), UpsertRequest{
		Name:      "DSLR Canon 600D",
		Code:      "FTI-CAM-012",
		Condition: "broken",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Delete_RefusesWhileOnLoan(t *testing.T) {
	repo := new(MockEquipmentRepository)
	repo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Equipment{ID: 5, Name: "Kabel HDMI 10m", Available: false}, nil)

	svc := NewService(repo)
	err := svc.Delete(context.Background(), 5)

	assert.ErrorIs(t, err, ErrOnLoan)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_Update_ConditionChangeKept(t *testing.T) {
	repo := new(MockEquipmentRepository)
	repo.On("GetByID", mock.Anything, int64(9)).
		Return(&domain.Equipment{ID: 9, Name: "Microphone Wireless", Code: "FTI-AUD-002", Condition: domain.ConditionGood, Available: true}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo)
	e, err := svc.Update(context.Background(), 9, UpsertRequest{
		Name:      "Microphone Wireless",
		Code:      "FTI-AUD-002",
		Condition: domain.ConditionMinorDamage,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ConditionMinorDamage, e.Condition)
}
