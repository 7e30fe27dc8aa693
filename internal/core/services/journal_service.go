package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mfoukoue/etude_compta_app/internal/apperrors"
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	portsrepo "github.com/mfoukoue/etude_compta_app/internal/core/ports/repositories"
	portssvc "github.com/mfoukoue/etude_compta_app/internal/core/ports/services"
	"github.com/mfoukoue/etude_compta_app/internal/dto"
)

// journalService manages the journal registry (VENTES, ACHATS, BANQUE, ...).
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(repo portsrepo.JournalRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{journalRepo: repo}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournal registers a new journal with a unique code.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, userID string) (*domain.Journal, error) {
	now := time.Now().UTC()
	journal := domain.Journal{
		JournalID: uuid.NewString(),
		Code:      req.Code,
		Label:     req.Label,
		Type:      domain.JournalType(req.Type),
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to save journal", slog.String("journal_code", journal.Code))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal created", slog.String("journal_id", journal.JournalID), slog.String("journal_code", journal.Code))
	return &journal, nil
}

// GetJournalByCode retrieves a journal by its code.
func (s *journalService) GetJournalByCode(ctx context.Context, code string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal by code", slog.String("journal_code", code))
		}
		return nil, err
	}
	return journal, nil
}

// ListJournals lists all journals.
func (s *journalService) ListJournals(ctx context.Context) ([]domain.Journal, error) {
	journals, err := s.journalRepo.ListJournals(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals")
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	if journals == nil {
		return []domain.Journal{}, nil
	}
	return journals, nil
}

// UpdateJournal applies partial updates to a journal.
func (s *journalService) UpdateJournal(ctx context.Context, code string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.Label != nil {
		journal.Label = *req.Label
	}
	if req.Type != nil {
		journal.Type = domain.JournalType(*req.Type)
	}
	if req.IsActive != nil {
		journal.IsActive = *req.IsActive
	}
	journal.LastUpdatedAt = time.Now().UTC()
	journal.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateJournal(ctx, *journal); err != nil {
		s.LogError(ctx, err, "Failed to update journal", slog.String("journal_code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Journal updated", slog.String("journal_code", code))
	return journal, nil
}

// DeleteJournal removes a journal, failing with ErrConflict while any entry
// references it.
func (s *journalService) DeleteJournal(ctx context.Context, code string) error {
	journal, err := s.journalRepo.FindJournalByCode(ctx, code)
	if err != nil {
		return err
	}

	if err := s.journalRepo.DeleteJournal(ctx, journal.JournalID); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to delete journal", slog.String("journal_code", code))
		}
		return err
	}
	s.LogInfo(ctx, "Journal deleted", slog.String("journal_code", code))
	return nil
}
