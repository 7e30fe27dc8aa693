package repositories

import (
	"context"

	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
)

// JournalReader defines read operations for the journal registry.
type JournalReader interface {
	// FindJournalByID retrieves a journal by its primary key.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindJournalByCode retrieves a journal by its unique code.
	FindJournalByCode(ctx context.Context, code string) (*domain.Journal, error)

	// ListJournals retrieves all journals sorted by code.
	ListJournals(ctx context.Context) ([]domain.Journal, error)
}

// JournalWriter defines write operations for the journal registry.
type JournalWriter interface {
	// SaveJournal persists a new journal. Returns apperrors.ErrConflict when
	// the code already exists.
	SaveJournal(ctx context.Context, journal domain.Journal) error

	// UpdateJournal updates an existing journal's mutable fields.
	UpdateJournal(ctx context.Context, journal domain.Journal) error

	// DeleteJournal removes a journal. Returns apperrors.ErrConflict while
	// any JournalEntry references it.
	DeleteJournal(ctx context.Context, journalID string) error
}

// JournalRepositoryFacade combines all journal-registry repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
