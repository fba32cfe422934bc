package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/triage-service/internal/domain"
)

// TicketRepository persists the ticket collection with whole-collection
// snapshot semantics: LoadAll returns the ordered collection (empty when
// absent) and ReplaceAll atomically overwrites it.
type TicketRepository interface {
	LoadAll(ctx context.Context) ([]domain.Ticket, error)
	ReplaceAll(ctx context.Context, tickets []domain.Ticket) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the pgx-backed repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) LoadAll(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT seq, ticket_no, description, status,
               issue_type, severity, affected_system, confidence, propose_fix,
               human_resolution, created_at, updated_at, closed_at
        FROM tickets ORDER BY seq`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load tickets: %w", err)
	}
	defer rows.Close()

	tickets := []domain.Ticket{}
	for rows.Next() {
		var (
			ticket     domain.Ticket
			issueType  *string
			severity   *string
			system     *string
			confidence *int
			proposeFix *string
		)
		if err := rows.Scan(
			&ticket.Seq,
			&ticket.TicketNo,
			&ticket.Description,
			&ticket.Status,
			&issueType,
			&severity,
			&system,
			&confidence,
			&proposeFix,
			&ticket.HumanResolution,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&ticket.ClosedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		if confidence != nil {
			ticket.Analysis = &domain.Analysis{
				IssueType:      deref(issueType),
				Severity:       deref(severity),
				AffectedSystem: deref(system),
				Confidence:     *confidence,
				ProposeFix:     deref(proposeFix),
			}
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}

func (r *ticketRepository) ReplaceAll(ctx context.Context, tickets []domain.Ticket) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin replace tickets: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM tickets`); err != nil {
		return fmt.Errorf("clear tickets: %w", err)
	}

	const insert = `
        INSERT INTO tickets (seq, ticket_no, description, status,
            issue_type, severity, affected_system, confidence, propose_fix,
            human_resolution, created_at, updated_at, closed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`

	batch := &pgx.Batch{}
	for i, ticket := range tickets {
		var (
			issueType  *string
			severity   *string
			system     *string
			confidence *int
			proposeFix *string
		)
		if ticket.Analysis != nil {
			issueType = &ticket.Analysis.IssueType
			severity = &ticket.Analysis.Severity
			system = &ticket.Analysis.AffectedSystem
			confidence = &ticket.Analysis.Confidence
			proposeFix = &ticket.Analysis.ProposeFix
		}
		batch.Queue(insert,
			int64(i+1),
			ticket.TicketNo,
			ticket.Description,
			ticket.Status,
			issueType,
			severity,
			system,
			confidence,
			proposeFix,
			ticket.HumanResolution,
			ticket.CreatedAt,
			ticket.UpdatedAt,
			ticket.ClosedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert tickets: %w", err)
	}

	return tx.Commit(ctx)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
