package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"silab/internal/domain"
)

func seedBooking(t *testing.T, db *gorm.DB, roomID int64, start, end time.Time) *domain.Booking {
	t.Helper()

	b := &domain.Booking{
		RequestRef:        "req-" + start.Format("20060102150405"),
		RoomID:            roomID,
		UserID:            7,
		Purpose:           "Seminar",
		ResponsiblePerson: "Budi Santoso",
		ContactPerson:     "0812345678",
		StartTime:         start,
		EndTime:           end,
		Status:            domain.BookingPending,
	}
	require.NoError(t, NewBookingRepository(db).CreateBatch(context.Background(), []*domain.Booking{b}))
	return b
}

func TestBookingRepository_CreateBatchRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	bookings := NewBookingRepository(db)

	day := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	existing := seedBooking(t, db, 1, day, day.Add(2*time.Hour))

	// the second record reuses an existing primary key, so the insert fails
	// and the first record must be rolled back with it
	batch := []*domain.Booking{
		{
			RequestRef: "req-batch",
			RoomID:     1,
			UserID:     8,
			Purpose:    "Workshop",
			StartTime:  day.Add(24 * time.Hour),
			EndTime:    day.Add(26 * time.Hour),
			Status:     domain.BookingPending,
		},
		{
			ID:         existing.ID,
			RequestRef: "req-batch",
			RoomID:     1,
			UserID:     8,
			Purpose:    "Workshop",
			StartTime:  day.Add(48 * time.Hour),
			EndTime:    day.Add(50 * time.Hour),
			Status:     domain.BookingPending,
		},
	}
	err := bookings.CreateBatch(ctx, batch)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&bookingModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBookingRepository_UpdateStatusOnlyDecidesPending(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	bookings := NewBookingRepository(db)

	day := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	b := seedBooking(t, db, 1, day, day.Add(2*time.Hour))

	require.NoError(t, bookings.UpdateStatus(ctx, b.ID, domain.BookingApproved, 1))

	got, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, got.Status)
	require.NotNil(t, got.DecidedBy)
	assert.Equal(t, int64(1), *got.DecidedBy)

	// a second decision finds no pending row to update
	err = bookings.UpdateStatus(ctx, b.ID, domain.BookingRejected, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err = bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, got.Status)
	assert.Equal(t, int64(1), *got.DecidedBy)
}

func TestBookingRepository_BusyWindowsCarryBookingID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	bookings := NewBookingRepository(db)

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	kept := seedBooking(t, db, 1, day.Add(9*time.Hour), day.Add(11*time.Hour))
	rejected := seedBooking(t, db, 1, day.Add(13*time.Hour), day.Add(15*time.Hour))
	require.NoError(t, bookings.UpdateStatus(ctx, rejected.ID, domain.BookingRejected, 1))
	seedBooking(t, db, 2, day.Add(9*time.Hour), day.Add(11*time.Hour)) // other room

	windows, err := bookings.BusyWindows(ctx, 1, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, kept.ID, windows[0].BookingID)
	assert.WithinDuration(t, kept.StartTime, windows[0].Start, time.Second)
}

func TestBookingRepository_UpdateSchedule(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	bookings := NewBookingRepository(db)

	day := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	b := seedBooking(t, db, 1, day, day.Add(2*time.Hour))

	newStart := day.Add(24 * time.Hour)
	require.NoError(t, bookings.UpdateSchedule(ctx, b.ID, 2, newStart, newStart.Add(2*time.Hour)))

	got, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.RoomID)
	assert.WithinDuration(t, newStart, got.StartTime, time.Second)
	assert.Equal(t, domain.BookingPending, got.Status)

	assert.ErrorIs(t, bookings.UpdateSchedule(ctx, 9999, 2, newStart, newStart.Add(time.Hour)), ErrNotFound)
}
