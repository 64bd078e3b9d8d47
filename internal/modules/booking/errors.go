package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("booking not found")
	ErrRoomNotFound            = errors.New("room not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	// ErrCalendarUnavailable means the external calendar could not be
	// queried. A failed check never counts as "room is free".
	ErrCalendarUnavailable = errors.New("calendar service unavailable")
)

// ConflictError reports the window that blocked a session so the caller can
// show it to the requester.
type ConflictError struct {
	Session int // zero-based index into the submitted sessions
	Start   time.Time
	End     time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("session %d conflicts with existing booking %s - %s",
		e.Session+1,
		e.Start.Format("2006-01-02 15:04"),
		e.End.Format("15:04"),
	)
}
