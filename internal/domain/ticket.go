package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TicketStatus enumerates lifecycle states for triaged tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusNeedReview TicketStatus = "need_review"
	TicketStatusClosed     TicketStatus = "closed"
)

// Severity enumerates the severity values the extractor may report.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Sentinel values used across extraction results and search facets.
const (
	ValueUnknown = "unknown"
	ValueNone    = "none"
)

// Analysis is the structured extraction attached to a ticket after the
// automatic processing pass has run. Confidence is always computed locally,
// never taken from the extractor.
type Analysis struct {
	IssueType      string `json:"issue_type"`
	Severity       string `json:"severity"`
	AffectedSystem string `json:"affected_system"`
	Confidence     int    `json:"confidence"`
	ProposeFix     string `json:"propose_fix"`
}

// Ticket is the aggregate for a triaged issue report.
type Ticket struct {
	Seq             int64
	TicketNo        string
	Description     string
	Status          TicketStatus
	Analysis        *Analysis
	HumanResolution *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ClosedAt        *time.Time
}

// TransitionError reports an illegal lifecycle transition.
type TransitionError struct {
	From TicketStatus
	To   TicketStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal ticket transition %s -> %s", e.From, e.To)
}

// open tickets move only through the automatic pass; need_review tickets
// close only through manual resolution; closed is terminal.
var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusNeedReview, TicketStatusClosed},
	TicketStatusNeedReview: {TicketStatusClosed},
	TicketStatusClosed:     {},
}

// CanTransition reports whether the lifecycle permits moving between states.
func CanTransition(from, to TicketStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// Transition moves the ticket to the next status, enforcing the lifecycle
// table. ClosedAt is stamped when the ticket reaches closed.
func (t *Ticket) Transition(next TicketStatus, now time.Time) error {
	if !CanTransition(t.Status, next) {
		return &TransitionError{From: t.Status, To: next}
	}
	t.Status = next
	t.UpdatedAt = now
	if next == TicketStatusClosed {
		closedAt := now
		t.ClosedAt = &closedAt
	}
	return nil
}

const ticketNoPrefix = "TICKET-"

// NextTicketNo derives the next ticket number from the last ticket in the
// collection. Numbers are strictly increasing and never reused, even when
// earlier tickets disappear externally.
func NextTicketNo(tickets []Ticket) (string, error) {
	if len(tickets) == 0 {
		return FormatTicketNo(1), nil
	}
	last := tickets[len(tickets)-1].TicketNo
	raw, ok := strings.CutPrefix(last, ticketNoPrefix)
	if !ok {
		return "", fmt.Errorf("malformed ticket number %q", last)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("malformed ticket number %q: %w", last, err)
	}
	return FormatTicketNo(n + 1), nil
}

// FormatTicketNo renders a sequence number as TICKET-NNNN.
func FormatTicketNo(n int) string {
	return fmt.Sprintf("%s%04d", ticketNoPrefix, n)
}

// NormalizeTicketNo canonicalizes user-entered ticket numbers for lookup.
func NormalizeTicketNo(no string) string {
	return strings.ToUpper(strings.TrimSpace(no))
}
