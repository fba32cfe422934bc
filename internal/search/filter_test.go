package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/triage-service/internal/domain"
)

func sampleTickets() []domain.Ticket {
	return []domain.Ticket{
		{
			TicketNo: "TICKET-0001",
			Status:   domain.TicketStatusClosed,
			Analysis: &domain.Analysis{Severity: "critical"},
		},
		{
			TicketNo: "TICKET-0002",
			Status:   domain.TicketStatusNeedReview,
			Analysis: &domain.Analysis{Severity: "medium"},
		},
		{
			TicketNo: "TICKET-0003",
			Status:   domain.TicketStatusNeedReview,
			Analysis: &domain.Analysis{Severity: "critical"},
		},
		{
			// never processed, no analysis
			TicketNo: "TICKET-0004",
			Status:   domain.TicketStatusOpen,
		},
	}
}

func ticketNos(tickets []domain.Ticket) []string {
	nos := make([]string, 0, len(tickets))
	for _, t := range tickets {
		nos = append(nos, t.TicketNo)
	}
	return nos
}

func TestFilterIdentityWhenUnconstrained(t *testing.T) {
	tickets := sampleTickets()
	got := Filter(tickets, Unconstrained())
	if diff := cmp.Diff(tickets, got); diff != "" {
		t.Errorf("unconstrained filter changed the collection (-want +got):\n%s", diff)
	}
}

func TestFilterByStatus(t *testing.T) {
	got := Filter(sampleTickets(), Facets{Status: "need_review", Severity: "none"})
	assert.Equal(t, []string{"TICKET-0002", "TICKET-0003"}, ticketNos(got))
}

func TestFilterBySeverity(t *testing.T) {
	got := Filter(sampleTickets(), Facets{Status: "none", Severity: "critical"})
	assert.Equal(t, []string{"TICKET-0001", "TICKET-0003"}, ticketNos(got))
}

func TestFilterByBothFacets(t *testing.T) {
	got := Filter(sampleTickets(), Facets{Status: "need_review", Severity: "critical"})
	assert.Equal(t, []string{"TICKET-0003"}, ticketNos(got))
}

func TestFilterSeverityRequiresAnalysis(t *testing.T) {
	got := Filter(sampleTickets(), Facets{Status: "open", Severity: "critical"})
	assert.Empty(t, got, "ticket without analysis never matches a severity facet")
}

func TestFilterPreservesOrder(t *testing.T) {
	tickets := []domain.Ticket{
		{TicketNo: "TICKET-0009", Status: domain.TicketStatusClosed, Analysis: &domain.Analysis{Severity: "low"}},
		{TicketNo: "TICKET-0002", Status: domain.TicketStatusClosed, Analysis: &domain.Analysis{Severity: "low"}},
		{TicketNo: "TICKET-0005", Status: domain.TicketStatusClosed, Analysis: &domain.Analysis{Severity: "low"}},
	}
	got := Filter(tickets, Facets{Status: "closed", Severity: "none"})
	assert.Equal(t, []string{"TICKET-0009", "TICKET-0002", "TICKET-0005"}, ticketNos(got))
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Facets
		want Facets
	}{
		{"passthrough", Facets{Status: "open", Severity: "high"}, Facets{Status: "open", Severity: "high"}},
		{"case and whitespace", Facets{Status: " Need_Review ", Severity: "CRITICAL"}, Facets{Status: "need_review", Severity: "critical"}},
		{"space spelling", Facets{Status: "need review", Severity: "none"}, Facets{Status: "need_review", Severity: "none"}},
		{"garbage maps to none", Facets{Status: "banana", Severity: "urgent"}, Facets{Status: "none", Severity: "none"}},
		{"empty maps to none", Facets{}, Facets{Status: "none", Severity: "none"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}
