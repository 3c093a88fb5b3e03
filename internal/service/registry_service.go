package service

import (
	"context"

	"github.com/liorkima5-coder/CityPulseAI/internal/registry"
	"github.com/liorkima5-coder/CityPulseAI/internal/repository"
)

// RegistryService derives the resident directory from ticket and lead rows.
// The directory is computed on demand, never persisted.
type RegistryService struct {
	tickets repository.TicketRepository
	leads   repository.LeadRepository
}

// NewRegistryService constructs the service.
func NewRegistryService(tickets repository.TicketRepository, leads repository.LeadRepository) *RegistryService {
	return &RegistryService{tickets: tickets, leads: leads}
}

// Contacts returns the merged ticket+lead directory, one entry per
// normalized phone, most recent first.
func (s *RegistryService) Contacts(ctx context.Context) ([]registry.Contact, error) {
	ticketRows, err := s.tickets.ListContacts(ctx)
	if err != nil {
		return nil, err
	}
	leadRows, err := s.leads.List(ctx, repository.LeadFilter{Limit: 10000})
	if err != nil {
		return nil, err
	}

	ticketContacts := make([]registry.Contact, 0, len(ticketRows))
	for _, row := range ticketRows {
		ticketContacts = append(ticketContacts, registry.Contact{
			FullName:  row.FullName,
			Phone:     row.Phone,
			Email:     row.Email,
			CreatedAt: row.CreatedAt,
		})
	}
	leadContacts := make([]registry.Contact, 0, len(leadRows))
	for _, lead := range leadRows {
		leadContacts = append(leadContacts, registry.Contact{
			FullName:  lead.FullName,
			Phone:     lead.Phone,
			Email:     lead.Email,
			CreatedAt: lead.CreatedAt,
		})
	}

	return registry.Merge(ticketContacts, leadContacts), nil
}

// Residents returns the tickets-only aggregated view with report counts.
func (s *RegistryService) Residents(ctx context.Context) ([]registry.ResidentEntry, error) {
	rows, err := s.tickets.ListContacts(ctx)
	if err != nil {
		return nil, err
	}

	contacts := make([]registry.TicketContact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, registry.TicketContact{
			Contact: registry.Contact{
				FullName:  row.FullName,
				Phone:     row.Phone,
				Email:     row.Email,
				CreatedAt: row.CreatedAt,
			},
			Address: row.Address,
		})
	}
	return registry.Aggregate(contacts), nil
}
