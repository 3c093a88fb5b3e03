package dto

import (
	"time"

	"github.com/liorkima5-coder/CityPulseAI/internal/domain"
)

// CreateLeadRequest is shared by the public contact form and the console.
type CreateLeadRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

// LeadResponse payload.
type LeadResponse struct {
	ID        string            `json:"id"`
	FullName  string            `json:"full_name"`
	Phone     string            `json:"phone"`
	Email     string            `json:"email"`
	Message   string            `json:"message"`
	Status    domain.LeadStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// LeadFromDomain maps a domain lead to its response shape.
func LeadFromDomain(l *domain.Lead) LeadResponse {
	return LeadResponse{
		ID:        l.ID,
		FullName:  l.FullName,
		Phone:     l.Phone,
		Email:     l.Email,
		Message:   l.Message,
		Status:    l.Status,
		CreatedAt: l.CreatedAt,
	}
}
