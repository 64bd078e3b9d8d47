package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"silab/internal/calendar"
	"silab/internal/domain"
	"silab/internal/repository"
)

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	cal      calendar.Service
	notifs   Notifier
	loc      *time.Location
}

func NewService(bookings BookingRepository, rooms RoomRepository, cal calendar.Service, notifs Notifier, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		cal:      cal,
		notifs:   notifs,
		loc:      loc,
	}
}

// overlaps is the half-open interval test: [aStart,aEnd) and [bStart,bEnd)
// conflict iff aStart < bEnd && aEnd > bStart. Back-to-back intervals do not
// conflict.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

type interval struct {
	start time.Time
	end   time.Time
}

// parseSession turns wall-clock strings into timestamps in the institution
// timezone. An inverted or zero-length interval is a validation error and is
// rejected before any availability lookup.
func (s *Service) parseSession(sess Session) (interval, error) {
	day, err := time.ParseInLocation("2006-01-02", sess.Date, s.loc)
	if err != nil {
		return interval{}, ErrValidation
	}
	st, err := time.Parse("15:04", sess.StartTime)
	if err != nil {
		return interval{}, ErrValidation
	}
	et, err := time.Parse("15:04", sess.EndTime)
	if err != nil {
		return interval{}, ErrValidation
	}

	iv := interval{
		start: time.Date(day.Year(), day.Month(), day.Day(), st.Hour(), st.Minute(), 0, 0, s.loc),
		end:   time.Date(day.Year(), day.Month(), day.Day(), et.Hour(), et.Minute(), 0, 0, s.loc),
	}
	if !iv.end.After(iv.start) {
		return interval{}, ErrValidation
	}
	return iv, nil
}

// checkSession reports the first window conflicting with the interval, from
// local bookings and, for synced rooms, the external calendar. A calendar
// query failure is returned as ErrCalendarUnavailable so the caller refuses
// the request instead of assuming the room is free. excludeID skips one
// booking's own window when it is being rescheduled; 0 excludes nothing.
func (s *Service) checkSession(ctx context.Context, room *domain.Room, iv interval, excludeID int64) (*repository.BusyWindow, error) {
	local, err := s.bookings.BusyWindows(ctx, room.ID, iv.start, iv.end)
	if err != nil {
		return nil, err
	}
	for _, w := range local {
		if excludeID != 0 && w.BookingID == excludeID {
			continue
		}
		if overlaps(iv.start, iv.end, w.Start, w.End) {
			return &repository.BusyWindow{Start: w.Start, End: w.End}, nil
		}
	}

	if room.CalendarID == "" || s.cal == nil {
		return nil, nil
	}

	events, err := s.cal.Events(ctx, room.CalendarID, iv.start, iv.end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}
	for _, ev := range events {
		if overlaps(iv.start, iv.end, ev.Start, ev.End) {
			return &repository.BusyWindow{Start: ev.Start, End: ev.End}, nil
		}
	}
	return nil, nil
}

// Create validates every session of the request, checks each one against the
// room's schedule, and persists them all under one request ref. If any single
// session conflicts, nothing is created.
func (s *Service) Create(ctx context.Context, userID int64, req CreateRequest) ([]domain.Booking, error) {
	if len(req.Sessions) == 0 {
		return nil, ErrValidation
	}

	intervals := make([]interval, 0, len(req.Sessions))
	for _, sess := range req.Sessions {
		iv, err := s.parseSession(sess)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}

	// Sessions of the same request must not collide with each other either.
	for i := range intervals {
		for j := i + 1; j < len(intervals); j++ {
			if overlaps(intervals[i].start, intervals[i].end, intervals[j].start, intervals[j].end) {
				return nil, ErrValidation
			}
		}
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	for i, iv := range intervals {
		hit, err := s.checkSession(ctx, room, iv, 0)
		if err != nil {
			return nil, err
		}
		if hit != nil {
			return nil, &ConflictError{Session: i, Start: hit.Start, End: hit.End}
		}
	}

	ref := uuid.NewString()
	records := make([]*domain.Booking, 0, len(intervals))
	for _, iv := range intervals {
		records = append(records, &domain.Booking{
			RequestRef:        ref,
			RoomID:            room.ID,
			UserID:            userID,
			Purpose:           req.Purpose,
			ResponsiblePerson: req.ResponsiblePerson,
			ContactPerson:     req.ContactPerson,
			StartTime:         iv.start,
			EndTime:           iv.end,
			ProposalFile:      req.ProposalFile,
			Status:            domain.BookingPending,
		})
	}

	if err := s.bookings.CreateBatch(ctx, records); err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(records))
	for _, b := range records {
		out = append(out, *b)
		if s.notifs != nil {
			s.notifs.BookingSubmitted(ctx, b, room.Name)
		}
	}
	return out, nil
}

// Decide moves a pending booking to approved or rejected. Both outcomes are
// terminal. Approval of a synced room pushes the session onto the room's
// calendar first; if that push fails, the booking stays pending.
func (s *Service) Decide(ctx context.Context, bookingID, actorID int64, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Terminal() {
		return nil, ErrInvalidStatusTransition
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.Status != domain.BookingPending {
		return nil, ErrInvalidStatusTransition
	}

	room, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil {
		return nil, err
	}

	if status == domain.BookingApproved && room.CalendarID != "" && s.cal != nil {
		ev := calendar.Event{
			Title: b.Purpose,
			Start: b.StartTime,
			End:   b.EndTime,
		}
		if err := s.cal.CreateEvent(ctx, room.CalendarID, ev, nil); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
		}
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, status, actorID); err != nil {
		// the row was pending a moment ago, so a miss means a concurrent
		// decision won
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidStatusTransition
		}
		return nil, err
	}

	b, err = s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if s.notifs != nil {
		s.notifs.BookingDecided(ctx, b, room.Name)
	}
	return b, nil
}

// Reschedule moves an existing booking to a new room or time window, keeping
// its status. The booking's own interval is excluded from the conflict check
// so it can be shortened or nudged in place. Moving an approved session does
// not touch the external calendar; the pushed event stays where it was.
func (s *Service) Reschedule(ctx context.Context, bookingID int64, req RescheduleRequest) (*domain.Booking, error) {
	iv, err := s.parseSession(req.Session)
	if err != nil {
		return nil, err
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	roomID := req.RoomID
	if roomID == 0 {
		roomID = b.RoomID
	}
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	hit, err := s.checkSession(ctx, room, iv, bookingID)
	if err != nil {
		return nil, err
	}
	if hit != nil {
		return nil, &ConflictError{Session: 0, Start: hit.Start, End: hit.End}
	}

	if err := s.bookings.UpdateSchedule(ctx, bookingID, room.ID, iv.start, iv.end); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.bookings.GetByID(ctx, bookingID)
}

// Cancel removes the requester's own booking while it is still pending.
// Staff maintaining the schedule may remove any booking.
func (s *Service) Cancel(ctx context.Context, bookingID, userID int64, asStaff bool) error {
	var err error
	if asStaff {
		err = s.bookings.Delete(ctx, bookingID)
	} else {
		err = s.bookings.DeletePending(ctx, bookingID, userID)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) MyBookings(ctx context.Context, userID int64) ([]Details, error) {
	rows, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withRoomNames(ctx, rows)
}

func (s *Service) List(ctx context.Context, status domain.BookingStatus) ([]Details, error) {
	rows, err := s.bookings.List(ctx, status)
	if err != nil {
		return nil, err
	}
	return s.withRoomNames(ctx, rows)
}

// Availability merges local bookings and external calendar events for one day.
func (s *Service) Availability(ctx context.Context, roomID int64, dateStr string) ([]BusyWindow, error) {
	day, err := time.ParseInLocation("2006-01-02", dateStr, s.loc)
	if err != nil {
		return nil, ErrValidation
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
	to := from.Add(24 * time.Hour)

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	out := make([]BusyWindow, 0)

	local, err := s.bookings.BusyWindows(ctx, roomID, from, to)
	if err != nil {
		return nil, err
	}
	for _, w := range local {
		out = append(out, BusyWindow{Start: w.Start, End: w.End, Source: "local"})
	}

	if room.CalendarID != "" && s.cal != nil {
		events, err := s.cal.Events(ctx, room.CalendarID, from, to)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
		}
		for _, ev := range events {
			out = append(out, BusyWindow{Start: ev.Start, End: ev.End, Source: "calendar", Title: ev.Title})
		}
	}
	return out, nil
}

func (s *Service) withRoomNames(ctx context.Context, rows []domain.Booking) ([]Details, error) {
	names := make(map[int64]string)
	out := make([]Details, 0, len(rows))
	for _, b := range rows {
		name, ok := names[b.RoomID]
		if !ok {
			room, err := s.rooms.GetByID(ctx, b.RoomID)
			if err == nil {
				name = room.Name
			}
			names[b.RoomID] = name
		}

		out = append(out, Details{
			ID:                b.ID,
			RequestRef:        b.RequestRef,
			RoomID:            b.RoomID,
			RoomName:          name,
			Purpose:           b.Purpose,
			ResponsiblePerson: b.ResponsiblePerson,
			ContactPerson:     b.ContactPerson,
			StartTime:         b.StartTime,
			EndTime:           b.EndTime,
			ProposalFile:      b.ProposalFile,
			Status:            string(b.Status),
			CreatedAt:         b.CreatedAt,
			DecidedAt:         b.DecidedAt,
		})
	}
	return out, nil
}
