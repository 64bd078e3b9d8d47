package domain

import "time"

type StaffType string

const (
	StaffTechnician StaffType = "technician"
	StaffAdmin      StaffType = "admin"
)

type StaffStatus string

const (
	StaffActive   StaffStatus = "active"
	StaffInactive StaffStatus = "inactive"
)

// Staff is a lab employee record (the Laboran roster). Only active
// technicians are offered as room PICs.
type Staff struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name" validate:"required"`
	NIP       string      `json:"nip" validate:"required"`
	Email     string      `json:"email" validate:"required,email"`
	Phone     string      `json:"phone,omitempty"`
	Type      StaffType   `json:"type"`
	Status    StaffStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
