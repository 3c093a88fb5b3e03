package domain

import "time"

// Category is a named complaint type with an SLA window in hours.
type Category struct {
	ID        string
	Name      string
	SLAHours  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
