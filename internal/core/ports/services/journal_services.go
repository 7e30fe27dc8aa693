package services

import (
	"context"

	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	"github.com/mfoukoue/etude_compta_app/internal/dto"
)

// JournalSvcFacade exposes journal-registry management.
type JournalSvcFacade interface {
	// CreateJournal registers a new journal with a unique code.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, userID string) (*domain.Journal, error)

	// GetJournalByCode retrieves a journal by its code.
	GetJournalByCode(ctx context.Context, code string) (*domain.Journal, error)

	// ListJournals lists all journals.
	ListJournals(ctx context.Context) ([]domain.Journal, error)

	// UpdateJournal applies partial updates to a journal.
	UpdateJournal(ctx context.Context, code string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error)

	// DeleteJournal removes a journal, failing while entries reference it.
	DeleteJournal(ctx context.Context, code string) error
}
