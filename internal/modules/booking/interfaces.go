package booking

import (
	"context"
	"time"

	"silab/internal/domain"
	"silab/internal/repository"
)

type BookingRepository interface {
	CreateBatch(ctx context.Context, bookings []*domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	BusyWindows(ctx context.Context, roomID int64, from, to time.Time) ([]repository.BusyWindow, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	List(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, decidedBy int64) error
	UpdateSchedule(ctx context.Context, id, roomID int64, start, end time.Time) error
	DeletePending(ctx context.Context, id, userID int64) error
	Delete(ctx context.Context, id int64) error
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// Notifier delivers in-app notifications; nil disables them.
type Notifier interface {
	BookingSubmitted(ctx context.Context, b *domain.Booking, roomName string)
	BookingDecided(ctx context.Context, b *domain.Booking, roomName string)
}
