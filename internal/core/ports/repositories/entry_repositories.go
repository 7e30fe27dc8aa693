package repositories

import (
	"context"

	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
)

// EntryReader defines read operations over posted journal entries and lines.
type EntryReader interface {
	// FindEntryByID retrieves a journal entry header by its primary key.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines of a journal entry in their
	// original insertion order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.AccountEntry, error)

	// FindEntriesByIDs retrieves entry headers keyed by id. Missing ids are
	// simply absent from the map, not an error; callers decide how to treat
	// the gap.
	FindEntriesByIDs(ctx context.Context, entryIDs []string) (map[string]domain.JournalEntry, error)

	// ListEntries retrieves entry headers, optionally restricted to a journal
	// and a date window (empty bounds are open), sorted by date then by
	// insertion order.
	ListEntries(ctx context.Context, journalID string, from, to domain.Date) ([]domain.JournalEntry, error)

	// ListLinesByAccountCodes retrieves every line touching one of the given
	// accounts, in insertion order.
	ListLinesByAccountCodes(ctx context.Context, codes []string) ([]domain.AccountEntry, error)
}

// EntryWriter defines write operations for the posting engine.
type EntryWriter interface {
	// SaveEntry persists a journal entry header and all its lines as one
	// atomic step. No partial write may ever be observed.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.AccountEntry) error
}

// EntryRepositoryFacade combines entry reader and writer.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
