package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"silab/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                int64      `gorm:"column:id;primaryKey"`
	RequestRef        string     `gorm:"column:request_ref;index"`
	RoomID            int64      `gorm:"column:room_id;index"`
	UserID            int64      `gorm:"column:user_id;index"`
	Purpose           string     `gorm:"column:purpose"`
	ResponsiblePerson string     `gorm:"column:responsible_person"`
	ContactPerson     string     `gorm:"column:contact_person"`
	StartTime         time.Time  `gorm:"column:start_time"`
	EndTime           time.Time  `gorm:"column:end_time"`
	ProposalFile      *string    `gorm:"column:proposal_file"`
	Status            string     `gorm:"column:status;index"`
	DecidedBy         *int64     `gorm:"column:decided_by"`
	DecidedAt         *time.Time `gorm:"column:decided_at"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBookingRecord(m bookingModel) *domain.Booking {
	var proposal string
	if m.ProposalFile != nil {
		proposal = *m.ProposalFile
	}

	return &domain.Booking{
		ID:                m.ID,
		RequestRef:        m.RequestRef,
		RoomID:            m.RoomID,
		UserID:            m.UserID,
		Purpose:           m.Purpose,
		ResponsiblePerson: m.ResponsiblePerson,
		ContactPerson:     m.ContactPerson,
		StartTime:         m.StartTime,
		EndTime:           m.EndTime,
		ProposalFile:      proposal,
		Status:            domain.BookingStatus(m.Status),
		DecidedBy:         m.DecidedBy,
		DecidedAt:         m.DecidedAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var proposal *string
	if b.ProposalFile != "" {
		v := b.ProposalFile
		proposal = &v
	}

	return bookingModel{
		ID:                b.ID,
		RequestRef:        b.RequestRef,
		RoomID:            b.RoomID,
		UserID:            b.UserID,
		Purpose:           b.Purpose,
		ResponsiblePerson: b.ResponsiblePerson,
		ContactPerson:     b.ContactPerson,
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		ProposalFile:      proposal,
		Status:            string(b.Status),
		DecidedBy:         b.DecidedBy,
		DecidedAt:         b.DecidedAt,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// CreateBatch inserts all sessions of a request in one transaction, so a
// failure on any session leaves none created.
func (r *BookingRepository) CreateBatch(ctx context.Context, bookings []*domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, b := range bookings {
			m := toBookingModel(b)
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			*b = *toDomainBookingRecord(m)
		}
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainBookingRecord(m), nil
}

// BusyWindow is an occupied interval reported to availability checks.
// BookingID lets callers skip the booking being rescheduled.
type BusyWindow struct {
	BookingID int64
	Start     time.Time
	End       time.Time
}

// BusyWindows lists non-rejected booking intervals for a room that intersect
// [from, to) using the half-open overlap test.
func (r *BookingRepository) BusyWindows(ctx context.Context, roomID int64, from, to time.Time) ([]BusyWindow, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("status <> ?", string(domain.BookingRejected)).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]BusyWindow, 0, len(rows))
	for _, m := range rows {
		out = append(out, BusyWindow{BookingID: m.ID, Start: m.StartTime, End: m.EndTime})
	}
	return out, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(rows), nil
}

// List returns bookings filtered by status ("" means all), newest first.
func (r *BookingRepository) List(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var rows []bookingModel
	if tx := q.Order("created_at DESC").Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(rows), nil
}

// ListApprovedBetween returns approved sessions starting inside [from, to),
// for the monthly schedule view.
func (r *BookingRepository) ListApprovedBetween(ctx context.Context, roomID int64, from, to time.Time) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Where("status = ?", string(domain.BookingApproved)).
		Where("start_time >= ? AND start_time < ?", from, to)
	if roomID != 0 {
		q = q.Where("room_id = ?", roomID)
	}

	var rows []bookingModel
	if tx := q.Order("start_time ASC").Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(rows), nil
}

// UpdateStatus records the decision. Only pending bookings accept one, so a
// concurrent decision on the same booking loses with ErrNotFound.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, decidedBy int64) error {
	now := time.Now()
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(domain.BookingPending)).
		Updates(map[string]any{
			"status":     string(status),
			"decided_by": decidedBy,
			"decided_at": now,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSchedule moves a booking to a new room and time window. The status is
// left untouched.
func (r *BookingRepository) UpdateSchedule(ctx context.Context, id, roomID int64, start, end time.Time) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).
		Updates(map[string]any{
			"room_id":    roomID,
			"start_time": start,
			"end_time":   end,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePending removes a booking only while it is still pending and owned by
// the requester.
func (r *BookingRepository) DeletePending(ctx context.Context, id, userID int64) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, string(domain.BookingPending)).
		Delete(&bookingModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a booking regardless of owner or status. Reserved for
// staff maintaining the schedule.
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&bookingModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus feeds the dashboard cards.
func (r *BookingRepository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Select("status, COUNT(1) as count").
		Group("status").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make(map[domain.BookingStatus]int64, len(rows))
	for _, r := range rows {
		out[domain.BookingStatus(r.Status)] = r.Count
	}
	return out, nil
}

func toDomainBookings(rows []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBookingRecord(m))
	}
	return out
}
