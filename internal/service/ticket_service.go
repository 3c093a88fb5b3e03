package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/liorkima5-coder/CityPulseAI/internal/domain"
	"github.com/liorkima5-coder/CityPulseAI/internal/events"
	"github.com/liorkima5-coder/CityPulseAI/internal/repository"
	apperrors "github.com/liorkima5-coder/CityPulseAI/pkg/util"
)

// TicketService coordinates console-side ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher}
}

// TicketListFilter describes console listing filters.
type TicketListFilter struct {
	Statuses   []domain.TicketStatus
	Priorities []domain.TicketPriority
	CategoryID *string
	SearchTerm *string
	Limit      int
	Offset     int
}

// ListTickets returns paginated tickets for the console.
func (s *TicketService) ListTickets(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error) {
	return s.tickets.List(ctx, repository.TicketFilter{
		Statuses:   filter.Statuses,
		Priorities: filter.Priorities,
		CategoryID: filter.CategoryID,
		SearchTerm: filter.SearchTerm,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// GetTicket fetches a single ticket.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// UpdateStatus moves a ticket to any status. There is no transition table:
// staff may reopen closed tickets or close fresh ones directly.
func (s *TicketService) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	if !validTicketStatus(status) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": status})
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	oldStatus := ticket.Status
	if err := s.tickets.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.Status = status

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTicketStatusChanged,
			Timestamp: time.Now(),
			Payload: events.TicketStatusChangedPayload{
				TicketID:  ticket.ID,
				OldStatus: oldStatus,
				NewStatus: status,
			},
		})
	}
	return ticket, nil
}

// UpdateNotes replaces the treatment notes on a ticket. Last write wins.
func (s *TicketService) UpdateNotes(ctx context.Context, id, notes string) error {
	if err := s.tickets.UpdateNotes(ctx, id, strings.TrimSpace(notes)); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// StatusCounts returns the dashboard counters, with zeroes for empty states.
func (s *TicketService) StatusCounts(ctx context.Context) (map[domain.TicketStatus]int, error) {
	counts, err := s.tickets.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	for _, status := range []domain.TicketStatus{domain.TicketStatusNew, domain.TicketStatusInProgress, domain.TicketStatusClosed} {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}
	return counts, nil
}

// ListGeotagged returns tickets that resolved to coordinates, for the map view.
func (s *TicketService) ListGeotagged(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.ListWithCoordinates(ctx)
}

func validTicketStatus(status domain.TicketStatus) bool {
	switch status {
	case domain.TicketStatusNew, domain.TicketStatusInProgress, domain.TicketStatusClosed:
		return true
	}
	return false
}
