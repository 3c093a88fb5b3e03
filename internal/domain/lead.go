package domain

import "time"

// LeadStatus tracks whether a contact-form inquiry is still pending.
type LeadStatus string

const (
	LeadStatusOpen   LeadStatus = "open"
	LeadStatusClosed LeadStatus = "closed"
)

// Lead is a general contact-form inquiry, independent of tickets.
type Lead struct {
	ID        string
	FullName  string
	Phone     string
	Email     string
	Message   string
	Status    LeadStatus
	CreatedAt time.Time
}
