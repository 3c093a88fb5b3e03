package dto

import (
	"time"

	"github.com/liorkima5-coder/CityPulseAI/internal/domain"
)

// CreateCategoryRequest payload.
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	SLAHours int    `json:"sla_hours"`
}

// UpdateCategoryRequest payload; nil fields are left untouched.
type UpdateCategoryRequest struct {
	Name     *string `json:"name"`
	SLAHours *int    `json:"sla_hours"`
}

// CategoryResponse payload.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SLAHours  int       `json:"sla_hours"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryFromDomain maps a domain category to its response shape.
func CategoryFromDomain(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		SLAHours:  c.SLAHours,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
