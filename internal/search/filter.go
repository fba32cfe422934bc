// Package search applies the two-facet declarative filter over the ticket
// collection. The facets themselves come from the external query parser;
// nothing here infers or guesses a field.
package search

import (
	"strings"

	"github.com/spec-kit/triage-service/internal/domain"
)

// Facets are the two supported search constraints. Either may carry the
// sentinel "none" meaning no constraint.
type Facets struct {
	Status   string `json:"status"`
	Severity string `json:"severity"`
}

// Unconstrained returns facets that match every ticket.
func Unconstrained() Facets {
	return Facets{Status: domain.ValueNone, Severity: domain.ValueNone}
}

// Normalize lowercases and trims facet values and maps anything outside the
// supported vocabulary to the "none" sentinel.
func (f Facets) Normalize() Facets {
	return Facets{
		Status:   normalizeFacet(f.Status, validStatusFacets),
		Severity: normalizeFacet(f.Severity, validSeverityFacets),
	}
}

var validStatusFacets = map[string]struct{}{
	string(domain.TicketStatusOpen):       {},
	string(domain.TicketStatusNeedReview): {},
	string(domain.TicketStatusClosed):     {},
}

var validSeverityFacets = map[string]struct{}{
	string(domain.SeverityLow):      {},
	string(domain.SeverityMedium):   {},
	string(domain.SeverityHigh):     {},
	string(domain.SeverityCritical): {},
}

func normalizeFacet(value string, valid map[string]struct{}) string {
	v := strings.ToLower(strings.TrimSpace(value))
	// tolerate the space-separated spelling some parsers emit
	v = strings.ReplaceAll(v, " ", "_")
	if _, ok := valid[v]; ok {
		return v
	}
	return domain.ValueNone
}

// Filter returns the ordered subsequence of tickets matching every
// non-"none" facet. Severity is read from the ticket's extraction result
// and treated as a non-match when absent. With both facets "none" the
// filter is the identity.
func Filter(tickets []domain.Ticket, facets Facets) []domain.Ticket {
	results := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if facets.Status != domain.ValueNone && string(t.Status) != facets.Status {
			continue
		}
		if facets.Severity != domain.ValueNone {
			if t.Analysis == nil || !strings.EqualFold(t.Analysis.Severity, facets.Severity) {
				continue
			}
		}
		results = append(results, t)
	}
	return results
}
