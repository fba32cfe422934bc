package events

import (
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated        EventType = "ticket_created"
	EventTicketTriaged        EventType = "ticket_triaged"
	EventTicketClosedManually EventType = "ticket_closed_manually"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketNo  string      `json:"ticket_no"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	DescriptionPreview string `json:"description_preview"`
}

// TicketTriagedPayload payload for one automatic processing decision.
type TicketTriagedPayload struct {
	OldStatus  domain.TicketStatus `json:"old_status"`
	NewStatus  domain.TicketStatus `json:"new_status"`
	Confidence int                 `json:"confidence"`
	ProposeFix string              `json:"propose_fix"`
}

// TicketClosedManuallyPayload payload.
type TicketClosedManuallyPayload struct {
	Resolution string `json:"resolution"`
}
