package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"silab/internal/domain"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ListApprovedBetween(ctx context.Context, roomID int64, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, roomID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) List(ctx context.Context, search, sortBy string) ([]domain.Room, error) {
	args := m.Called(ctx, search, sortBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func TestService_Month_GroupsByDay(t *testing.T) {
	loc := time.UTC
	bookings := new(MockBookingRepository)
	rooms := new(MockRoomRepository)

	day := func(d, h int) time.Time {
		return time.Date(2024, 5, d, h, 0, 0, 0, loc)
	}

	bookings.On("ListApprovedBetween", mock.Anything, int64(0),
		time.Date(2024, 5, 1, 0, 0, 0, 0, loc),
		time.Date(2024, 6, 1, 0, 0, 0, 0, loc)).
		Return([]domain.Booking{
			{ID: 3, RoomID: 1, Purpose: "Praktikum Jaringan", StartTime: day(2, 13), EndTime: day(2, 15)},
			{ID: 1, RoomID: 1, Purpose: "Kuliah Basis Data", StartTime: day(2, 8), EndTime: day(2, 10)},
			{ID: 2, RoomID: 2, Purpose: "Seminar Proposal", StartTime: day(7, 9), EndTime: day(7, 11)},
		}, nil)
	rooms.On("List", mock.Anything, "", "").Return([]domain.Room{
		{ID: 1, Name: "Lab Komputer 1"},
		{ID: 2, Name: "Lab Multimedia"},
	}, nil)

	svc := NewService(bookings, rooms, loc)
	out, err := svc.Month(context.Background(), 2024, 5, 0)

	assert.NoError(t, err)
	assert.Len(t, out.Days, 2)

	assert.Equal(t, "2024-05-02", out.Days[0].Date)
	assert.Len(t, out.Days[0].Entries, 2)
	// entries within a day come sorted by start time
	assert.Equal(t, int64(1), out.Days[0].Entries[0].BookingID)
	assert.Equal(t, int64(3), out.Days[0].Entries[1].BookingID)
	assert.Equal(t, "Lab Komputer 1", out.Days[0].Entries[0].RoomName)

	assert.Equal(t, "2024-05-07", out.Days[1].Date)
	assert.Equal(t, "Lab Multimedia", out.Days[1].Entries[0].RoomName)
}

func TestService_Month_RejectsOutOfRange(t *testing.T) {
	svc := NewService(new(MockBookingRepository), new(MockRoomRepository), time.UTC)

	_, err := svc.Month(context.Background(), 2024, 13, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Month(context.Background(), 1999, 1, 0)
	assert.ErrorIs(t, err, ErrValidation)
}
