package room

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"silab/internal/domain"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	room.ID = 7
	return args.Error(0)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context, search, sortBy string) ([]domain.Room, error) {
	args := m.Called(ctx, search, sortBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

type MockTechnicianDirectory struct {
	mock.Mock
}

func (m *MockTechnicianDirectory) ListActiveTechnicians(ctx context.Context) ([]domain.Staff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Staff), args.Error(1)
}

func TestService_Create_PICMustBeActiveTechnician(t *testing.T) {
	rooms := new(MockRoomRepository)
	techs := new(MockTechnicianDirectory)

	techs.On("ListActiveTechnicians", mock.Anything).Return([]domain.Staff{
		{ID: 1, Name: "Bpk. Budi Santoso", Type: domain.StaffTechnician, Status: domain.StaffActive},
	}, nil)

	svc := NewService(rooms, techs)

	req := UpsertRequest{
		Name:     "Lab Multimedia",
		Capacity: 20,
		PIC:      "Sdr. Andi Wijaya",
	}
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownPIC)
	rooms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	rooms.On("Create", mock.Anything, mock.Anything).Return(nil)
	req.PIC = "Bpk. Budi Santoso"
	room, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "Bpk. Budi Santoso", room.PIC)
}

func TestService_Create_EmptyPICAllowed(t *testing.T) {
	rooms := new(MockRoomRepository)
	rooms.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(rooms, new(MockTechnicianDirectory))
	room, err := svc.Create(context.Background(), UpsertRequest{
		Name:     "Lab Robotika & IoT",
		Capacity: 25,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), room.ID)
}

func TestService_Create_RejectsInvalidCapacity(t *testing.T) {
	svc := NewService(new(MockRoomRepository), new(MockTechnicianDirectory))

	_, err := svc.Create(context.Background(), UpsertRequest{Name: "Lab X", Capacity: 0})
	assert.ErrorIs(t, err, ErrValidation)
}
