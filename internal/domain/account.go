package domain

import "time"

type AccountRole string

const (
	AccountStudent  AccountRole = "student"
	AccountLecturer AccountRole = "lecturer"
	AccountStaff    AccountRole = "staff"
)

type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountInactive  AccountStatus = "inactive"
	AccountSuspended AccountStatus = "suspended"
)

// Account is a managed campus user (student/lecturer/staff roster kept by the
// admin), distinct from User which can log in to this service.
type Account struct {
	ID         int64         `json:"id"`
	Name       string        `json:"name" validate:"required"`
	Email      string        `json:"email" validate:"required,email"`
	Role       AccountRole   `json:"role"`
	Identifier string        `json:"identifier" validate:"required"` // NIM or NIDN
	Department string        `json:"department,omitempty"`
	Status     AccountStatus `json:"status"`
	LastLogin  *time.Time    `json:"last_login,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
