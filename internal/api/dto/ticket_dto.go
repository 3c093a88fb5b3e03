package dto

import (
	"time"

	"github.com/liorkima5-coder/CityPulseAI/internal/domain"
)

// SubmitTicketRequest is the public intake payload. The photo travels as a
// multipart file part next to this JSON-ish form.
type SubmitTicketRequest struct {
	FullName     string `json:"full_name" form:"full_name"`
	Phone        string `json:"phone" form:"phone"`
	Email        string `json:"email" form:"email"`
	IssueAddress string `json:"issue_address" form:"issue_address"`
	CategoryID   string `json:"category_id" form:"category_id"`
	Description  string `json:"description" form:"description"`
	CaptchaToken string `json:"captcha_token" form:"captcha_token"`
}

// CreateStaffTicketRequest is the console's manual intake payload.
type CreateStaffTicketRequest struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	IssueAddress string `json:"issue_address"`
	CategoryID   string `json:"category_id"`
	Description  string `json:"description"`
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// UpdateTicketNotesRequest payload.
type UpdateTicketNotesRequest struct {
	TreatmentNotes string `json:"treatment_notes"`
}

// TicketResponse is the full console view of a ticket.
type TicketResponse struct {
	ID             string                  `json:"id"`
	FullName       string                  `json:"full_name"`
	Phone          string                  `json:"phone"`
	Email          string                  `json:"email"`
	IssueAddress   string                  `json:"issue_address"`
	CategoryID     string                  `json:"category_id"`
	Description    string                  `json:"description"`
	PhotoURL       *string                 `json:"photo_url,omitempty"`
	Location       *domain.Coordinates     `json:"location,omitempty"`
	Priority       domain.TicketPriority   `json:"priority"`
	Sentiment      domain.TicketSentiment  `json:"sentiment"`
	Status         domain.TicketStatus     `json:"status"`
	TreatmentNotes string                  `json:"treatment_notes"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// TicketFromDomain maps a domain ticket to its response shape.
func TicketFromDomain(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:             t.ID,
		FullName:       t.FullName,
		Phone:          t.Phone,
		Email:          t.Email,
		IssueAddress:   t.IssueAddress,
		CategoryID:     t.CategoryID,
		Description:    t.Description,
		PhotoURL:       t.PhotoURL,
		Location:       t.Location,
		Priority:       t.Priority,
		Sentiment:      t.Sentiment,
		Status:         t.Status,
		TreatmentNotes: t.TreatmentNotes,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
