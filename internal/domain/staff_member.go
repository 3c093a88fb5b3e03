package domain

import "time"

// StaffRole enumerates console operator roles.
type StaffRole string

const (
	StaffRoleAgent StaffRole = "agent"
	StaffRoleAdmin StaffRole = "admin"
)

// StaffMember models a municipal console operator.
type StaffMember struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
