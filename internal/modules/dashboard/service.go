package dashboard

import (
	"context"

	"silab/internal/domain"
)

type BookingSource interface {
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error)
	List(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
}

type RoomCounter interface {
	Count(ctx context.Context) (int64, error)
}

type EquipmentCounter interface {
	Counts(ctx context.Context) (total, available int64, err error)
}

type LoanCounter interface {
	CountOutstanding(ctx context.Context) (borrowed, late int64, err error)
}

type Service struct {
	bookings  BookingSource
	rooms     RoomCounter
	equipment EquipmentCounter
	loans     LoanCounter
}

func NewService(bookings BookingSource, rooms RoomCounter, equipment EquipmentCounter, loans LoanCounter) *Service {
	return &Service{bookings: bookings, rooms: rooms, equipment: equipment, loans: loans}
}

// recentLimit caps the pending-request preview on the dashboard.
const recentLimit = 5

type Stats struct {
	PendingBookings  int64 `json:"pending_bookings"`
	ApprovedBookings int64 `json:"approved_bookings"`
	RejectedBookings int64 `json:"rejected_bookings"`

	TotalRooms int64 `json:"total_rooms"`

	TotalEquipment     int64 `json:"total_equipment"`
	AvailableEquipment int64 `json:"available_equipment"`

	ItemsOnLoan int64 `json:"items_on_loan"`
	LateItems   int64 `json:"late_items"`

	RecentPending []domain.Booking `json:"recent_pending"`
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	byStatus, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	roomTotal, err := s.rooms.Count(ctx)
	if err != nil {
		return nil, err
	}
	total, available, err := s.equipment.Counts(ctx)
	if err != nil {
		return nil, err
	}
	borrowed, late, err := s.loans.CountOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := s.bookings.List(ctx, domain.BookingPending)
	if err != nil {
		return nil, err
	}
	if len(pending) > recentLimit {
		pending = pending[:recentLimit]
	}

	return &Stats{
		PendingBookings:    byStatus[domain.BookingPending],
		ApprovedBookings:   byStatus[domain.BookingApproved],
		RejectedBookings:   byStatus[domain.BookingRejected],
		TotalRooms:         roomTotal,
		TotalEquipment:     total,
		AvailableEquipment: available,
		ItemsOnLoan:        borrowed,
		LateItems:          late,
		RecentPending:      pending,
	}, nil
}
