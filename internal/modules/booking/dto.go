package booking

import "time"

// Session is one requested interval. Date and times are wall-clock values in
// the institution timezone.
type Session struct {
	Date      string `json:"date" binding:"required"`       // 2006-01-02
	StartTime string `json:"start_time" binding:"required"` // 15:04
	EndTime   string `json:"end_time" binding:"required"`   // 15:04
}

type CreateRequest struct {
	RoomID            int64     `json:"room_id" binding:"required"`
	Purpose           string    `json:"purpose" binding:"required"`
	ResponsiblePerson string    `json:"responsible_person" binding:"required"`
	ContactPerson     string    `json:"contact_person" binding:"required"`
	ProposalFile      string    `json:"proposal_file"`
	Sessions          []Session `json:"sessions" binding:"required,min=1"`
}

// RescheduleRequest moves an existing booking. RoomID 0 keeps the current
// room.
type RescheduleRequest struct {
	RoomID  int64   `json:"room_id"`
	Session Session `json:"session" binding:"required"`
}

type DecideRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// Details is a booking row joined with its room name for list views.
type Details struct {
	ID                int64      `json:"id"`
	RequestRef        string     `json:"request_ref"`
	RoomID            int64      `json:"room_id"`
	RoomName          string     `json:"room_name"`
	Purpose           string     `json:"purpose"`
	ResponsiblePerson string     `json:"responsible_person"`
	ContactPerson     string     `json:"contact_person"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           time.Time  `json:"end_time"`
	ProposalFile      string     `json:"proposal_file,omitempty"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	DecidedAt         *time.Time `json:"decided_at,omitempty"`
}

// BusyWindow is an occupied interval returned by the availability endpoint.
type BusyWindow struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Source string    `json:"source"` // "local" | "calendar"
	Title  string    `json:"title,omitempty"`
}
