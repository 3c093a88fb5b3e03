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

// LeadInput is a raw contact-form inquiry.
type LeadInput struct {
	FullName string
	Phone    string
	Email    string
	Message  string
}

// LeadService manages general contact-form inquiries.
type LeadService struct {
	leads      repository.LeadRepository
	dispatcher events.Dispatcher
}

// NewLeadService constructs the service.
func NewLeadService(leads repository.LeadRepository, dispatcher events.Dispatcher) *LeadService {
	return &LeadService{leads: leads, dispatcher: dispatcher}
}

// Create records an inquiry. Used by both the public contact form and the
// console's manual lead entry.
func (s *LeadService) Create(ctx context.Context, input LeadInput) (*domain.Lead, error) {
	if strings.TrimSpace(input.FullName) == "" || strings.TrimSpace(input.Phone) == "" {
		return nil, apperrors.NewValidationError("full_name and phone required", nil)
	}

	lead := &domain.Lead{
		FullName: strings.TrimSpace(input.FullName),
		Phone:    strings.TrimSpace(input.Phone),
		Email:    strings.TrimSpace(input.Email),
		Message:  strings.TrimSpace(input.Message),
		Status:   domain.LeadStatusOpen,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventLeadCreated,
			Timestamp: time.Now(),
			Payload: events.LeadCreatedPayload{
				LeadID:   lead.ID,
				FullName: lead.FullName,
				Phone:    lead.Phone,
			},
		})
	}
	return lead, nil
}

// List returns inquiries for the console.
func (s *LeadService) List(ctx context.Context, status *domain.LeadStatus, search *string, limit, offset int) ([]domain.Lead, error) {
	return s.leads.List(ctx, repository.LeadFilter{
		Status:     status,
		SearchTerm: search,
		Limit:      limit,
		Offset:     offset,
	})
}

// ToggleStatus flips a lead between open and closed.
func (s *LeadService) ToggleStatus(ctx context.Context, id string) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	next := domain.LeadStatusClosed
	if lead.Status == domain.LeadStatusClosed {
		next = domain.LeadStatusOpen
	}
	if err := s.leads.UpdateStatus(ctx, id, next); err != nil {
		return nil, apperrors.MapError(err)
	}
	lead.Status = next
	return lead, nil
}

// Delete removes an inquiry permanently.
func (s *LeadService) Delete(ctx context.Context, id string) error {
	if err := s.leads.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
