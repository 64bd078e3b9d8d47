package domain

import "time"

type Room struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	Capacity    int       `json:"capacity" validate:"required,gt=0"`
	// PIC is the responsible technician shown on the room card.
	PIC        string   `json:"pic"`
	Facilities []string `json:"facilities,omitempty"`
	ImageURL   string   `json:"image_url,omitempty"`
	// CalendarID links the room to its feed on the institution calendar
	// service. Empty means the room is not synced and only local bookings
	// count toward availability.
	CalendarID string    `json:"calendar_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
