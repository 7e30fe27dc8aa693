package services

import (
	"context"

	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	"github.com/mfoukoue/etude_compta_app/internal/dto"
)

// PostingSvcFacade exposes the journal posting engine. Entries and their
// lines are immutable once posted; corrections go through ReverseEntry.
type PostingSvcFacade interface {
	// CreateEntry validates and atomically persists a journal entry with its
	// lines. The balance invariant (sum of debits equals sum of credits) is
	// checked before any write.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, []domain.AccountEntry, error)

	// GetEntry retrieves an entry header with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, []domain.AccountEntry, error)

	// ListEntries lists entry headers, optionally restricted to a journal
	// code and a date window (empty bounds are open).
	ListEntries(ctx context.Context, journalCode string, from, to domain.Date) ([]domain.JournalEntry, error)

	// ReverseEntry posts the offsetting entry of a previously posted entry,
	// dated asOf (the original date when asOf is empty).
	ReverseEntry(ctx context.Context, entryID string, asOf domain.Date, userID string) (*domain.JournalEntry, []domain.AccountEntry, error)
}
