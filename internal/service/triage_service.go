package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/llm"
	"github.com/spec-kit/triage-service/internal/search"
	"github.com/spec-kit/triage-service/internal/store"
	"github.com/spec-kit/triage-service/internal/triage"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

// Analyzer is the external text-understanding capability consumed by the
// triage workflow.
type Analyzer interface {
	ExtractFields(ctx context.Context, description string) llm.Extraction
	GenerateFix(ctx context.Context, description string) (string, error)
	ParseSearchQuery(ctx context.Context, query string) search.Facets
}

// FacetCache memoizes parsed search facets.
type FacetCache interface {
	Get(ctx context.Context, query string) (search.Facets, bool)
	Put(ctx context.Context, query string, facets search.Facets)
}

// TriageService coordinates the ticket triage workflow: creation, the
// automatic processing pass, search, and manual closure.
type TriageService struct {
	store      *store.Store
	analyzer   Analyzer
	facetCache FacetCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TriageDependencies bundles collaborators for the service.
type TriageDependencies struct {
	Store      *store.Store
	Analyzer   Analyzer
	FacetCache FacetCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTriageService constructs the service.
func NewTriageService(deps TriageDependencies) *TriageService {
	return &TriageService{
		store:      deps.Store,
		analyzer:   deps.Analyzer,
		facetCache: deps.FacetCache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CreateTicket validates and stores a new open ticket, then runs the
// processing pass so the caller sees the triaged result.
func (s *TriageService) CreateTicket(ctx context.Context, description string) (*domain.Ticket, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperrors.NewValidationError("ticket description required", nil)
	}

	var created domain.Ticket
	_, err := s.store.UpdateTickets(ctx, func(tickets []domain.Ticket) ([]domain.Ticket, error) {
		no, err := domain.NextTicketNo(tickets)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		created = domain.Ticket{
			TicketNo:    no,
			Description: description,
			Status:      domain.TicketStatusOpen,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return append(tickets, created), nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketNo: created.TicketNo,
		Payload: events.TicketCreatedPayload{
			DescriptionPreview: stringPreview(description, 120),
		},
	})

	if _, err := s.ProcessOpenTickets(ctx); err != nil {
		s.logger.Warn("processing pass after creation failed", zap.Error(err))
		return &created, nil
	}
	return s.GetTicket(ctx, created.TicketNo)
}

// ProcessOpenTickets runs the automatic processing pass over the whole
// collection. Only tickets currently open are touched, so repeated runs
// produce no additional side effects. Returns the number of tickets
// processed.
func (s *TriageService) ProcessOpenTickets(ctx context.Context) (int, error) {
	processed := 0
	var triagedEvents []events.Event

	_, err := s.store.UpdateTickets(ctx, func(tickets []domain.Ticket) ([]domain.Ticket, error) {
		changed := false
		for i := range tickets {
			if tickets[i].Status != domain.TicketStatusOpen {
				continue
			}
			event, err := s.triageTicket(ctx, &tickets[i])
			if err != nil {
				return nil, err
			}
			triagedEvents = append(triagedEvents, event)
			processed++
			changed = true
		}
		if !changed {
			return nil, nil
		}
		return tickets, nil
	})
	if err != nil {
		return 0, err
	}

	for _, event := range triagedEvents {
		s.publish(ctx, event)
	}
	return processed, nil
}

// triageTicket extracts, scores, decides, and transitions one open ticket.
func (s *TriageService) triageTicket(ctx context.Context, ticket *domain.Ticket) (events.Event, error) {
	extraction := s.analyzer.ExtractFields(ctx, ticket.Description)
	confidence := triage.Confidence(
		extraction.IssueType,
		extraction.Severity,
		extraction.AffectedSystem,
		ticket.Description,
	)
	decision := triage.Decide(confidence)

	proposeFix := domain.ValueNone
	if decision.GenerateFix {
		fix, err := s.analyzer.GenerateFix(ctx, ticket.Description)
		if err != nil {
			// the confidence decision stands; only the suggestion is lost
			s.logger.Warn("fix generation failed",
				zap.String("ticket_no", ticket.TicketNo),
				zap.Error(err))
		} else {
			proposeFix = fix
		}
	}

	ticket.Analysis = &domain.Analysis{
		IssueType:      extraction.IssueType,
		Severity:       extraction.Severity,
		AffectedSystem: extraction.AffectedSystem,
		Confidence:     confidence,
		ProposeFix:     proposeFix,
	}

	oldStatus := ticket.Status
	if err := ticket.Transition(decision.Status, time.Now()); err != nil {
		return events.Event{}, err
	}

	s.logger.Info("ticket triaged",
		zap.String("ticket_no", ticket.TicketNo),
		zap.Int("confidence", confidence),
		zap.String("status", string(ticket.Status)))

	return events.Event{
		Type:     events.EventTicketTriaged,
		TicketNo: ticket.TicketNo,
		Payload: events.TicketTriagedPayload{
			OldStatus:  oldStatus,
			NewStatus:  ticket.Status,
			Confidence: confidence,
			ProposeFix: proposeFix,
		},
	}, nil
}

// ListTickets returns the full ordered collection.
func (s *TriageService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.store.Tickets(ctx)
}

// GetTicket returns one ticket by its number.
func (s *TriageService) GetTicket(ctx context.Context, ticketNo string) (*domain.Ticket, error) {
	normalized := domain.NormalizeTicketNo(ticketNo)
	if normalized == "" {
		return nil, apperrors.NewValidationError("ticket number required", nil)
	}
	tickets, err := s.store.Tickets(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if domain.NormalizeTicketNo(tickets[i].TicketNo) == normalized {
			return &tickets[i], nil
		}
	}
	return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_no": normalized})
}

// Search parses the natural-language query into the two supported facets
// and filters the collection. Facet parsing results are cached.
func (s *TriageService) Search(ctx context.Context, query string) ([]domain.Ticket, search.Facets, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, search.Facets{}, apperrors.NewValidationError("search query required", nil)
	}

	facets, hit := s.facetCache.Get(ctx, query)
	if !hit {
		facets = s.analyzer.ParseSearchQuery(ctx, query)
		s.facetCache.Put(ctx, query, facets)
	}

	tickets, err := s.store.Tickets(ctx)
	if err != nil {
		return nil, search.Facets{}, err
	}
	return search.Filter(tickets, facets), facets, nil
}

// CloseManually closes a need_review ticket with human resolution notes
// and appends one entry to the resolution memory.
func (s *TriageService) CloseManually(ctx context.Context, ticketNo, notes string) (*domain.Ticket, error) {
	normalized := domain.NormalizeTicketNo(ticketNo)
	if normalized == "" {
		return nil, apperrors.NewValidationError("ticket number required", nil)
	}
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, apperrors.NewValidationError("resolution notes required", nil)
	}

	var closed domain.Ticket
	_, err := s.store.UpdateTickets(ctx, func(tickets []domain.Ticket) ([]domain.Ticket, error) {
		for i := range tickets {
			if domain.NormalizeTicketNo(tickets[i].TicketNo) != normalized {
				continue
			}
			if tickets[i].Status != domain.TicketStatusNeedReview {
				return nil, apperrors.NewConflict("ticket is not awaiting review", map[string]any{
					"ticket_no": tickets[i].TicketNo,
					"status":    tickets[i].Status,
				})
			}
			if err := tickets[i].Transition(domain.TicketStatusClosed, time.Now()); err != nil {
				return nil, err
			}
			tickets[i].HumanResolution = &notes
			closed = tickets[i]
			return tickets, nil
		}
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_no": normalized})
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.AppendResolution(ctx, domain.ResolutionEntry{
		TicketNo:        closed.TicketNo,
		Resolution:      notes,
		ApprovedByHuman: true,
		CreatedAt:       time.Now(),
	}); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketClosedManually,
		TicketNo: closed.TicketNo,
		Payload:  events.TicketClosedManuallyPayload{Resolution: notes},
	})
	return &closed, nil
}

// Resolutions returns the append-only audit log.
func (s *TriageService) Resolutions(ctx context.Context) ([]domain.ResolutionEntry, error) {
	return s.store.Resolutions(ctx)
}

func (s *TriageService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
