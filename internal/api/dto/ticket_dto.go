package dto

import (
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Description string `json:"description"`
}

// SearchRequest payload for natural-language ticket search.
type SearchRequest struct {
	Query string `json:"query"`
}

// CloseTicketRequest payload for manual closure.
type CloseTicketRequest struct {
	ResolutionNotes string `json:"resolution_notes"`
}

// AnalysisResponse mirrors the stored extraction result.
type AnalysisResponse struct {
	IssueType      string `json:"issue_type"`
	Severity       string `json:"severity"`
	AffectedSystem string `json:"affected_system"`
	Confidence     int    `json:"confidence"`
	ProposeFix     string `json:"propose_fix"`
}

// TicketResponse is the full ticket representation.
type TicketResponse struct {
	TicketNo        string              `json:"ticket_no"`
	Description     string              `json:"description"`
	Status          domain.TicketStatus `json:"status"`
	Analysis        *AnalysisResponse   `json:"ai_analysis,omitempty"`
	HumanResolution *string             `json:"human_resolution,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	ClosedAt        *time.Time          `json:"closed_at,omitempty"`
}

// SearchResponse carries filtered tickets plus the facets that were applied.
type SearchResponse struct {
	Status   string           `json:"status"`
	Severity string           `json:"severity"`
	Tickets  []TicketResponse `json:"tickets"`
}

// ResolutionEntryResponse is one audit log record.
type ResolutionEntryResponse struct {
	TicketNo        string    `json:"ticket_no"`
	Resolution      string    `json:"resolution"`
	ApprovedByHuman bool      `json:"approved_by_human"`
	CreatedAt       time.Time `json:"created_at"`
}

// ProcessResponse reports one processing pass.
type ProcessResponse struct {
	Processed int `json:"processed"`
}

// FromTicket maps a domain ticket to its response shape.
func FromTicket(t *domain.Ticket) TicketResponse {
	resp := TicketResponse{
		TicketNo:        t.TicketNo,
		Description:     t.Description,
		Status:          t.Status,
		HumanResolution: t.HumanResolution,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
		ClosedAt:        t.ClosedAt,
	}
	if t.Analysis != nil {
		resp.Analysis = &AnalysisResponse{
			IssueType:      t.Analysis.IssueType,
			Severity:       t.Analysis.Severity,
			AffectedSystem: t.Analysis.AffectedSystem,
			Confidence:     t.Analysis.Confidence,
			ProposeFix:     t.Analysis.ProposeFix,
		}
	}
	return resp
}

// FromTickets maps a ticket collection, preserving order.
func FromTickets(tickets []domain.Ticket) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, FromTicket(&tickets[i]))
	}
	return items
}
