package events

import (
	"time"

	"github.com/liorkima5-coder/CityPulseAI/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventLeadCreated         EventType = "lead_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload carries everything the confirmation email needs.
type TicketCreatedPayload struct {
	TicketID     string                `json:"ticket_id"`
	FullName     string                `json:"full_name"`
	Phone        string                `json:"phone"`
	Email        string                `json:"email"`
	IssueAddress string                `json:"issue_address"`
	Description  string                `json:"description"`
	Priority     domain.TicketPriority `json:"priority"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID  string              `json:"ticket_id"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// LeadCreatedPayload payload.
type LeadCreatedPayload struct {
	LeadID   string `json:"lead_id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}
