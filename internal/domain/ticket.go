package domain

import "time"

// TicketStatus enumerates lifecycle states for citizen tickets. Transitions
// are unconstrained: staff may move a ticket between any two states.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "new"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority is assigned by the triage classifier, never by the citizen.
type TicketPriority string

const (
	TicketPriorityNormal   TicketPriority = "normal"
	TicketPriorityUrgent   TicketPriority = "urgent"
	TicketPriorityCritical TicketPriority = "critical"
)

// TicketSentiment captures the emotional tone of the description.
type TicketSentiment string

const (
	SentimentNeutral  TicketSentiment = "neutral"
	SentimentNegative TicketSentiment = "negative"
	SentimentPositive TicketSentiment = "positive"
)

// Coordinates is a resolved geographic position. A ticket carries either the
// full pair or none at all.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Ticket is the aggregate for citizen-filed complaints.
type Ticket struct {
	ID             string
	FullName       string
	Phone          string
	Email          string
	IssueAddress   string
	CategoryID     string
	Description    string
	PhotoURL       *string
	Location       *Coordinates
	Priority       TicketPriority
	Sentiment      TicketSentiment
	Status         TicketStatus
	TreatmentNotes string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
