package domain

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
	RoleMember     Role = "member"
)

// Capabilities are resolved once from the token role instead of scattering
// role comparisons through the handlers.
func (r Role) CanManageRooms() bool     { return r == RoleAdmin }
func (r Role) CanApproveBookings() bool { return r == RoleAdmin || r == RoleTechnician }
func (r Role) CanManageLoans() bool     { return r == RoleAdmin || r == RoleTechnician }
func (r Role) CanManageInventory() bool { return r == RoleAdmin || r == RoleTechnician }
func (r Role) CanManageUsers() bool     { return r == RoleAdmin }

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTechnician, RoleMember:
		return true
	}
	return false
}

type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email" validate:"required,email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
