// Package registry builds the resident directory from raw ticket and lead
// contact rows, deduplicated by normalized phone number.
package registry

import (
	"sort"
	"time"
)

// Source tags which collection a directory entry originated from.
type Source string

const (
	SourceTicket Source = "ticket"
	SourceLead   Source = "lead"
)

// Contact is a raw contact row drawn from either tickets or leads. Phone
// keeps the original formatting for display; comparison always goes through
// NormalizePhone.
type Contact struct {
	FullName  string
	Phone     string
	Email     string
	CreatedAt time.Time
	Source    Source
}

// TicketContact extends Contact with the reported address, available only
// for ticket-originated rows.
type TicketContact struct {
	Contact
	Address string
}

// ResidentEntry is one aggregated directory row in the tickets-only view.
type ResidentEntry struct {
	FullName     string
	Phone        string
	Email        string
	Address      string
	ReportCount  int
	LastReportAt time.Time
}

// NormalizePhone strips every non-digit rune. Country-code variants are not
// reconciled: "+9725..." and "05..." normalize to different keys.
func NormalizePhone(phone string) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	return string(digits)
}

// Merge combines ticket and lead contacts into a single directory with one
// entry per normalized phone, keeping the most recent contact's details.
// Contacts without any digits in their phone are dropped: they cannot be
// deduplicated or identified. Output is ordered most-recent-first.
func Merge(tickets, leads []Contact) []Contact {
	combined := make([]Contact, 0, len(tickets)+len(leads))
	for _, c := range tickets {
		c.Source = SourceTicket
		combined = append(combined, c)
	}
	for _, c := range leads {
		c.Source = SourceLead
		combined = append(combined, c)
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].CreatedAt.After(combined[j].CreatedAt)
	})

	seen := make(map[string]struct{}, len(combined))
	result := make([]Contact, 0, len(combined))
	for _, c := range combined {
		key := NormalizePhone(c.Phone)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, c)
	}
	return result
}

// Aggregate builds the tickets-only resident view: one row per normalized
// phone carrying the most recent submission's details, the total number of
// reports filed from that phone, and the latest report timestamp. Rows with
// no usable phone are dropped, same as Merge.
func Aggregate(tickets []TicketContact) []ResidentEntry {
	sorted := make([]TicketContact, len(tickets))
	copy(sorted, tickets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	index := make(map[string]int, len(sorted))
	result := make([]ResidentEntry, 0, len(sorted))
	for _, tc := range sorted {
		key := NormalizePhone(tc.Phone)
		if key == "" {
			continue
		}
		if pos, ok := index[key]; ok {
			result[pos].ReportCount++
			if tc.CreatedAt.After(result[pos].LastReportAt) {
				result[pos].LastReportAt = tc.CreatedAt
			}
			continue
		}
		index[key] = len(result)
		result = append(result, ResidentEntry{
			FullName:     tc.FullName,
			Phone:        tc.Phone,
			Email:        tc.Email,
			Address:      tc.Address,
			ReportCount:  1,
			LastReportAt: tc.CreatedAt,
		})
	}
	return result
}
