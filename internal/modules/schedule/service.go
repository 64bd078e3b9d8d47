package schedule

import (
	"context"
	"errors"
	"sort"
	"time"

	"silab/internal/domain"
)

var ErrValidation = errors.New("validation error")

type BookingRepository interface {
	ListApprovedBetween(ctx context.Context, roomID int64, from, to time.Time) ([]domain.Booking, error)
}

type RoomRepository interface {
	List(ctx context.Context, search, sortBy string) ([]domain.Room, error)
}

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	loc      *time.Location
}

func NewService(bookings BookingRepository, rooms RoomRepository, loc *time.Location) *Service {
	return &Service{bookings: bookings, rooms: rooms, loc: loc}
}

type Entry struct {
	BookingID         int64     `json:"booking_id"`
	RoomID            int64     `json:"room_id"`
	RoomName          string    `json:"room_name"`
	Purpose           string    `json:"purpose"`
	ResponsiblePerson string    `json:"responsible_person"`
	Start             time.Time `json:"start"`
	End               time.Time `json:"end"`
}

type Day struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`
}

type Month struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Days  []Day `json:"days"`
}

// Month returns the approved bookings of one calendar month grouped by day.
// roomID zero means all rooms.
func (s *Service) Month(ctx context.Context, year, month int, roomID int64) (*Month, error) {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, ErrValidation
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, 0)

	bookings, err := s.bookings.ListApprovedBetween(ctx, roomID, from, to)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.List(ctx, "", "")
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(rooms))
	for _, r := range rooms {
		names[r.ID] = r.Name
	}

	byDay := make(map[string][]Entry)
	for _, b := range bookings {
		day := b.StartTime.In(s.loc).Format("2006-01-02")
		byDay[day] = append(byDay[day], Entry{
			BookingID:         b.ID,
			RoomID:            b.RoomID,
			RoomName:          names[b.RoomID],
			Purpose:           b.Purpose,
			ResponsiblePerson: b.ResponsiblePerson,
			Start:             b.StartTime,
			End:               b.EndTime,
		})
	}

	days := make([]Day, 0, len(byDay))
	for date, entries := range byDay {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Start.Before(entries[j].Start) })
		days = append(days, Day{Date: date, Entries: entries})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return &Month{Year: year, Month: month, Days: days}, nil
}
