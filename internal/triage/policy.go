package triage

import "github.com/spec-kit/triage-service/internal/domain"

// AutoResolveThreshold is the confidence (inclusive) at which a ticket is
// closed automatically instead of being queued for human review.
const AutoResolveThreshold = 85

// Decision is the outcome of the resolution policy for one processing pass.
type Decision struct {
	Status domain.TicketStatus
	// GenerateFix indicates the fix-generation capability should be
	// invoked. It is never set for tickets routed to review, which avoids
	// wasted external calls for low-confidence extractions.
	GenerateFix bool
}

// Decide maps a computed confidence to the post-processing status.
func Decide(confidence int) Decision {
	if confidence >= AutoResolveThreshold {
		return Decision{Status: domain.TicketStatusClosed, GenerateFix: true}
	}
	return Decision{Status: domain.TicketStatusNeedReview}
}
