package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-service/internal/domain"
)

type fakeTicketRepo struct {
	tickets  []domain.Ticket
	loadErr  error
	saves    int
	saveErr  error
	lastSave []domain.Ticket
}

func (f *fakeTicketRepo) LoadAll(ctx context.Context) ([]domain.Ticket, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]domain.Ticket{}, f.tickets...), nil
}

func (f *fakeTicketRepo) ReplaceAll(ctx context.Context, tickets []domain.Ticket) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.tickets = append([]domain.Ticket{}, tickets...)
	f.lastSave = f.tickets
	return nil
}

type fakeMemoryRepo struct {
	entries []domain.ResolutionEntry
}

func (f *fakeMemoryRepo) LoadAll(ctx context.Context) ([]domain.ResolutionEntry, error) {
	return append([]domain.ResolutionEntry{}, f.entries...), nil
}

func (f *fakeMemoryRepo) ReplaceAll(ctx context.Context, entries []domain.ResolutionEntry) error {
	f.entries = append([]domain.ResolutionEntry{}, entries...)
	return nil
}

func TestUpdateTicketsPersistsResult(t *testing.T) {
	repo := &fakeTicketRepo{tickets: []domain.Ticket{{TicketNo: "TICKET-0001", Status: domain.TicketStatusOpen}}}
	s := New(repo, &fakeMemoryRepo{})

	updated, err := s.UpdateTickets(context.Background(), func(tickets []domain.Ticket) ([]domain.Ticket, error) {
		tickets = append(tickets, domain.Ticket{TicketNo: "TICKET-0002", Status: domain.TicketStatusOpen})
		return tickets, nil
	})
	require.NoError(t, err)
	assert.Len(t, updated, 2)
	assert.Equal(t, 1, repo.saves)
	if diff := cmp.Diff(updated, repo.lastSave); diff != "" {
		t.Errorf("persisted snapshot differs from returned one:\n%s", diff)
	}
}

func TestUpdateTicketsNilMeansNoWrite(t *testing.T) {
	repo := &fakeTicketRepo{tickets: []domain.Ticket{{TicketNo: "TICKET-0001"}}}
	s := New(repo, &fakeMemoryRepo{})

	snapshot, err := s.UpdateTickets(context.Background(), func(tickets []domain.Ticket) ([]domain.Ticket, error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.Len(t, snapshot, 1)
	assert.Zero(t, repo.saves)
}

func TestUpdateTicketsPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	repo := &fakeTicketRepo{loadErr: boom}
	s := New(repo, &fakeMemoryRepo{})
	_, err := s.UpdateTickets(context.Background(), func(tickets []domain.Ticket) ([]domain.Ticket, error) {
		return tickets, nil
	})
	assert.ErrorIs(t, err, boom)

	repo = &fakeTicketRepo{}
	s = New(repo, &fakeMemoryRepo{})
	_, err = s.UpdateTickets(context.Background(), func([]domain.Ticket) ([]domain.Ticket, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, repo.saves, "failed compute must not write")
}

func TestAppendResolutionAssignsSequence(t *testing.T) {
	memory := &fakeMemoryRepo{entries: []domain.ResolutionEntry{{Seq: 1, TicketNo: "TICKET-0001"}}}
	s := New(&fakeTicketRepo{}, memory)

	err := s.AppendResolution(context.Background(), domain.ResolutionEntry{
		TicketNo:        "TICKET-0002",
		Resolution:      "restarted service",
		ApprovedByHuman: true,
	})
	require.NoError(t, err)
	require.Len(t, memory.entries, 2)
	assert.Equal(t, int64(2), memory.entries[1].Seq)
	assert.Equal(t, "TICKET-0002", memory.entries[1].TicketNo)
	assert.Equal(t, "TICKET-0001", memory.entries[0].TicketNo, "existing entries preserved")
}
