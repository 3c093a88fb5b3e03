package dto

import (
	"time"

	"github.com/liorkima5-coder/CityPulseAI/internal/registry"
)

// ContactResponse is one merged directory entry.
type ContactResponse struct {
	FullName  string          `json:"full_name"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email"`
	Source    registry.Source `json:"source"`
	CreatedAt time.Time       `json:"created_at"`
}

// ResidentResponse is one aggregated tickets-only directory entry.
type ResidentResponse struct {
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	ReportCount  int       `json:"report_count"`
	LastReportAt time.Time `json:"last_report_at"`
}

// ContactFromRegistry maps a registry contact to its response shape.
func ContactFromRegistry(c registry.Contact) ContactResponse {
	return ContactResponse{
		FullName:  c.FullName,
		Phone:     c.Phone,
		Email:     c.Email,
		Source:    c.Source,
		CreatedAt: c.CreatedAt,
	}
}

// ResidentFromRegistry maps a resident entry to its response shape.
func ResidentFromRegistry(r registry.ResidentEntry) ResidentResponse {
	return ResidentResponse{
		FullName:     r.FullName,
		Phone:        r.Phone,
		Email:        r.Email,
		Address:      r.Address,
		ReportCount:  r.ReportCount,
		LastReportAt: r.LastReportAt,
	}
}
