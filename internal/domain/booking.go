package domain

import "time"

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

// Approved and rejected are both terminal; there is no way back to pending.
func (s BookingStatus) Terminal() bool {
	return s == BookingApproved || s == BookingRejected
}

// Booking is one session of a request. Sessions submitted together share a
// RequestRef so a multi-day series can be listed as one unit.
type Booking struct {
	ID                int64         `json:"id"`
	RequestRef        string        `json:"request_ref"`
	RoomID            int64         `json:"room_id" validate:"required"`
	UserID            int64         `json:"user_id"`
	Purpose           string        `json:"purpose" validate:"required"`
	ResponsiblePerson string        `json:"responsible_person" validate:"required"`
	ContactPerson     string        `json:"contact_person" validate:"required"`
	StartTime         time.Time     `json:"start_time"`
	EndTime           time.Time     `json:"end_time"`
	ProposalFile      string        `json:"proposal_file,omitempty"`
	Status            BookingStatus `json:"status"`
	DecidedBy         *int64        `json:"decided_by,omitempty"`
	DecidedAt         *time.Time    `json:"decided_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
