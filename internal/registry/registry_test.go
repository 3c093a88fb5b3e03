package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(minute int) time.Time {
	return time.Date(2025, 11, 3, 10, minute, 0, 0, time.UTC)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "0501234567", NormalizePhone("050-1234567"))
	assert.Equal(t, "0501234567", NormalizePhone("050 123 4567"))
	assert.Equal(t, "9725012345", NormalizePhone("+972 (50) 12345"))
	assert.Equal(t, "", NormalizePhone("no digits here"))
}

func TestMergeDeduplicatesByNormalizedPhone(t *testing.T) {
	tickets := []Contact{
		{FullName: "Dana Levi", Phone: "050-1234567", Email: "dana@example.com", CreatedAt: at(1)},
	}
	leads := []Contact{
		{FullName: "D. Levi", Phone: "0501234567", Email: "dana.new@example.com", CreatedAt: at(5)},
	}

	merged := Merge(tickets, leads)
	require.Len(t, merged, 1)
	// the lead is more recent, its details win
	assert.Equal(t, "D. Levi", merged[0].FullName)
	assert.Equal(t, "0501234567", merged[0].Phone)
	assert.Equal(t, SourceLead, merged[0].Source)
}

func TestMergeDropsEmptyPhones(t *testing.T) {
	tickets := []Contact{
		{FullName: "Anonymous", Phone: "", CreatedAt: at(1)},
		{FullName: "Dashes Only", Phone: "---", CreatedAt: at(2)},
		{FullName: "Kept", Phone: "0521111111", CreatedAt: at(3)},
	}

	merged := Merge(tickets, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, "Kept", merged[0].FullName)
}

func TestMergeOrdersMostRecentFirst(t *testing.T) {
	tickets := []Contact{
		{FullName: "Old", Phone: "0521111111", CreatedAt: at(1)},
	}
	leads := []Contact{
		{FullName: "New", Phone: "0532222222", CreatedAt: at(9)},
		{FullName: "Middle", Phone: "0543333333", CreatedAt: at(4)},
	}

	merged := Merge(tickets, leads)
	require.Len(t, merged, 3)
	assert.Equal(t, []string{"New", "Middle", "Old"},
		[]string{merged[0].FullName, merged[1].FullName, merged[2].FullName})
}

func TestMergeLatestProvenanceWins(t *testing.T) {
	// two leads and three tickets share one phone; the latest row is a ticket
	tickets := []Contact{
		{FullName: "T1", Phone: "050-1234567", CreatedAt: at(2)},
		{FullName: "T2", Phone: "0501234567", CreatedAt: at(4)},
		{FullName: "T3", Phone: "(050)1234567", CreatedAt: at(8)},
	}
	leads := []Contact{
		{FullName: "L1", Phone: "050 1234567", CreatedAt: at(3)},
		{FullName: "L2", Phone: "0501234567", CreatedAt: at(6)},
	}

	merged := Merge(tickets, leads)
	require.Len(t, merged, 1)
	assert.Equal(t, "T3", merged[0].FullName)
	assert.Equal(t, SourceTicket, merged[0].Source)
}

func TestAggregateCountsReportsPerPhone(t *testing.T) {
	tickets := []TicketContact{
		{Contact: Contact{FullName: "Dana", Phone: "050-1234567", CreatedAt: at(1)}, Address: "Jaffa 1"},
		{Contact: Contact{FullName: "Dana Levi", Phone: "0501234567", CreatedAt: at(7)}, Address: "Jaffa 2"},
		{Contact: Contact{FullName: "Yossi", Phone: "0529999999", CreatedAt: at(3)}, Address: "Herzl 5"},
	}

	residents := Aggregate(tickets)
	require.Len(t, residents, 2)

	// most recent submission leads, with merged stats
	assert.Equal(t, "Dana Levi", residents[0].FullName)
	assert.Equal(t, "Jaffa 2", residents[0].Address)
	assert.Equal(t, 2, residents[0].ReportCount)
	assert.Equal(t, at(7), residents[0].LastReportAt)

	assert.Equal(t, "Yossi", residents[1].FullName)
	assert.Equal(t, 1, residents[1].ReportCount)
}

func TestAggregateDropsEmptyPhones(t *testing.T) {
	tickets := []TicketContact{
		{Contact: Contact{FullName: "No Phone", Phone: "", CreatedAt: at(1)}},
	}
	assert.Empty(t, Aggregate(tickets))
}
