package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/triage-service/internal/domain"
)

// ResolutionMemoryRepository persists the append-only audit log of
// human-approved closures. It carries the same load-all / save-all
// contract as the ticket collection.
type ResolutionMemoryRepository interface {
	LoadAll(ctx context.Context) ([]domain.ResolutionEntry, error)
	ReplaceAll(ctx context.Context, entries []domain.ResolutionEntry) error
}

type resolutionMemoryRepository struct {
	pool *pgxpool.Pool
}

// NewResolutionMemoryRepository instantiates the pgx-backed repository.
func NewResolutionMemoryRepository(pool *pgxpool.Pool) ResolutionMemoryRepository {
	return &resolutionMemoryRepository{pool: pool}
}

func (r *resolutionMemoryRepository) LoadAll(ctx context.Context) ([]domain.ResolutionEntry, error) {
	const query = `
        SELECT seq, ticket_no, resolution, approved_by_human, created_at
        FROM resolution_memory ORDER BY seq`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load resolution memory: %w", err)
	}
	defer rows.Close()

	entries := []domain.ResolutionEntry{}
	for rows.Next() {
		var entry domain.ResolutionEntry
		if err := rows.Scan(
			&entry.Seq,
			&entry.TicketNo,
			&entry.Resolution,
			&entry.ApprovedByHuman,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan resolution entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *resolutionMemoryRepository) ReplaceAll(ctx context.Context, entries []domain.ResolutionEntry) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin replace resolution memory: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM resolution_memory`); err != nil {
		return fmt.Errorf("clear resolution memory: %w", err)
	}

	const insert = `
        INSERT INTO resolution_memory (seq, ticket_no, resolution, approved_by_human, created_at)
        VALUES ($1,$2,$3,$4,$5)`

	batch := &pgx.Batch{}
	for i, entry := range entries {
		batch.Queue(insert,
			int64(i+1),
			entry.TicketNo,
			entry.Resolution,
			entry.ApprovedByHuman,
			entry.CreatedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert resolution memory: %w", err)
	}

	return tx.Commit(ctx)
}
