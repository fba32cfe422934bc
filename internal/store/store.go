// Package store provides the single-writer discipline over the ticket and
// resolution-memory collections: every mutation is a read-snapshot /
// compute / replace-snapshot cycle under one mutex, so at most one
// mutating operation is in flight and no update is lost.
package store

import (
	"context"
	"sync"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/repository"
)

// Store is the sole mutation path for both collections.
type Store struct {
	mu      sync.Mutex
	tickets repository.TicketRepository
	memory  repository.ResolutionMemoryRepository
}

// New builds a store over the two repositories.
func New(tickets repository.TicketRepository, memory repository.ResolutionMemoryRepository) *Store {
	return &Store{tickets: tickets, memory: memory}
}

// Tickets returns the current ticket snapshot.
func (s *Store) Tickets(ctx context.Context) ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickets.LoadAll(ctx)
}

// UpdateTickets runs fn against the current snapshot and persists the
// returned collection. Returning a nil slice from fn signals no change and
// skips the write. The updated (or unchanged) collection is returned.
func (s *Store) UpdateTickets(ctx context.Context, fn func([]domain.Ticket) ([]domain.Ticket, error)) ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.tickets.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	updated, err := fn(snapshot)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return snapshot, nil
	}
	if err := s.tickets.ReplaceAll(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Resolutions returns the audit log snapshot.
func (s *Store) Resolutions(ctx context.Context) ([]domain.ResolutionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memory.LoadAll(ctx)
}

// AppendResolution appends one audit entry, preserving everything already
// recorded.
func (s *Store) AppendResolution(ctx context.Context, entry domain.ResolutionEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.memory.LoadAll(ctx)
	if err != nil {
		return err
	}
	entry.Seq = int64(len(entries) + 1)
	return s.memory.ReplaceAll(ctx, append(entries, entry))
}
