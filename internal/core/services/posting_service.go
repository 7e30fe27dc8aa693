package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfoukoue/etude_compta_app/internal/apperrors"
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	portsrepo "github.com/mfoukoue/etude_compta_app/internal/core/ports/repositories"
	portssvc "github.com/mfoukoue/etude_compta_app/internal/core/ports/services"
	"github.com/mfoukoue/etude_compta_app/internal/dto"
)

var (
	ErrEntryNoLines      = fmt.Errorf("%w: journal entry must have at least one line", apperrors.ErrValidation)
	ErrEntryUnbalanced   = fmt.Errorf("%w: journal entry debits and credits do not balance", apperrors.ErrValidation)
	ErrLineBothSides     = fmt.Errorf("%w: a line must carry a debit or a credit, not both", apperrors.ErrValidation)
	ErrLineNoAmount      = fmt.Errorf("%w: a line with neither debit nor credit is a no-op", apperrors.ErrValidation)
	ErrLineNegative      = fmt.Errorf("%w: debit and credit must be non-negative", apperrors.ErrValidation)
	ErrLineNotInteger    = fmt.Errorf("%w: amounts are integer FCFA", apperrors.ErrValidation)
	ErrAccountNotPosting = fmt.Errorf("%w: summary accounts cannot be posted to", apperrors.ErrValidation)
	ErrAccountInactive   = fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
)

// postingService is the journal posting engine. It validates entries against
// the double-entry invariant and persists them atomically; lines become
// visible to the balance calculator as soon as CreateEntry returns.
type postingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalReader
	entryRepo   portsrepo.EntryRepositoryFacade
}

// NewPostingService creates a new PostingService.
func NewPostingService(accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalReader, entryRepo portsrepo.EntryRepositoryFacade) portssvc.PostingSvcFacade {
	return &postingService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		entryRepo:   entryRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// validateLine checks the debit-XOR-credit contract of one line.
func validateLine(accountCode string, debit, credit decimal.Decimal) error {
	if debit.IsNegative() || credit.IsNegative() {
		return fmt.Errorf("%w (account %s)", ErrLineNegative, accountCode)
	}
	if debit.IsPositive() && credit.IsPositive() {
		return fmt.Errorf("%w (account %s)", ErrLineBothSides, accountCode)
	}
	if debit.IsZero() && credit.IsZero() {
		return fmt.Errorf("%w (account %s)", ErrLineNoAmount, accountCode)
	}
	if !debit.IsInteger() || !credit.IsInteger() {
		return fmt.Errorf("%w (account %s)", ErrLineNotInteger, accountCode)
	}
	return nil
}

// CreateEntry implements the posting contract: active journal, existing
// postable accounts, strictly positive debit XOR credit per line, and the
// balance invariant checked before any write. On violation nothing is
// persisted.
func (s *postingService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, []domain.AccountEntry, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if len(req.Lines) == 0 {
		return nil, nil, ErrEntryNoLines
	}

	journal, err := s.journalRepo.FindJournalByCode(ctx, req.JournalCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, req.JournalCode)
		}
		return nil, nil, fmt.Errorf("failed to fetch journal: %w", err)
	}
	if !journal.IsActive {
		return nil, nil, fmt.Errorf("%w: journal %s is inactive", apperrors.ErrNotFound, req.JournalCode)
	}

	debitsSum := decimal.Zero
	creditsSum := decimal.Zero
	accountCodes := make([]string, 0, len(req.Lines))
	for _, line := range req.Lines {
		if err := validateLine(line.AccountCode, line.Debit, line.Credit); err != nil {
			return nil, nil, err
		}
		debitsSum = debitsSum.Add(line.Debit)
		creditsSum = creditsSum.Add(line.Credit)
		accountCodes = append(accountCodes, line.AccountCode)
	}

	// Balance invariant, checked before any write. The error carries the
	// computed imbalance.
	if !debitsSum.Equal(creditsSum) {
		imbalance := debitsSum.Sub(creditsSum)
		return nil, nil, fmt.Errorf("%w: imbalance of %s (debits %s, credits %s)",
			ErrEntryUnbalanced, imbalance.Abs().String(), debitsSum.String(), creditsSum.String())
	}

	accountsMap, err := s.accountRepo.FindAccountsByCodes(ctx, uniqueStrings(accountCodes))
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for posting", slog.String("journal_code", req.JournalCode))
		return nil, nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, code := range accountCodes {
		account, found := accountsMap[code]
		if !found {
			return nil, nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, code)
		}
		if account.IsSummary {
			return nil, nil, fmt.Errorf("%w (account %s)", ErrAccountNotPosting, code)
		}
		if !account.IsActive {
			return nil, nil, fmt.Errorf("%w (account %s)", ErrAccountInactive, code)
		}
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:   uuid.NewString(),
		JournalID: journal.JournalID,
		Date:      date,
		Label:     req.Label,
		Reference: req.Reference,
		DossierID: req.DossierID,
		Validated: req.Validated,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	lines := make([]domain.AccountEntry, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = domain.AccountEntry{
			LineID:      uuid.NewString(),
			EntryID:     entry.EntryID,
			AccountCode: line.AccountCode,
			Debit:       line.Debit,
			Credit:      line.Credit,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.entryRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to persist journal entry", slog.String("entry_id", entry.EntryID))
		return nil, nil, fmt.Errorf("failed to persist entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("journal_code", req.JournalCode),
		slog.String("date", string(date)),
		slog.Int("line_count", len(lines)),
		slog.String("total", debitsSum.String()))
	return &entry, lines, nil
}

// GetEntry retrieves an entry header with its lines.
func (s *postingService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, []domain.AccountEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}
	return entry, lines, nil
}

// ListEntries lists entry headers, optionally restricted to a journal code
// and a date window.
func (s *postingService) ListEntries(ctx context.Context, journalCode string, from, to domain.Date) ([]domain.JournalEntry, error) {
	journalID := ""
	if journalCode != "" {
		journal, err := s.journalRepo.FindJournalByCode(ctx, journalCode)
		if err != nil {
			return nil, err
		}
		journalID = journal.JournalID
	}
	entries, err := s.entryRepo.ListEntries(ctx, journalID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries", slog.String("journal_code", journalCode))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if entries == nil {
		return []domain.JournalEntry{}, nil
	}
	return entries, nil
}

// ReverseEntry posts the offsetting entry of a posted entry: same lines with
// debit and credit swapped. Lines are immutable once posted, so this is the
// only correction mechanism.
func (s *postingService) ReverseEntry(ctx context.Context, entryID string, asOf domain.Date, userID string) (*domain.JournalEntry, []domain.AccountEntry, error) {
	original, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}
	originalLines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}

	if asOf == "" {
		asOf = original.Date
	}

	now := time.Now().UTC()
	reversal := domain.JournalEntry{
		EntryID:   uuid.NewString(),
		JournalID: original.JournalID,
		Date:      asOf,
		Label:     "EXTOURNE - " + original.Label,
		Reference: original.EntryID,
		DossierID: original.DossierID,
		Validated: original.Validated,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	lines := make([]domain.AccountEntry, len(originalLines))
	for i, line := range originalLines {
		lines[i] = domain.AccountEntry{
			LineID:      uuid.NewString(),
			EntryID:     reversal.EntryID,
			AccountCode: line.AccountCode,
			Debit:       line.Credit,
			Credit:      line.Debit,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.entryRepo.SaveEntry(ctx, reversal, lines); err != nil {
		s.LogError(ctx, err, "Failed to persist reversal entry", slog.String("original_entry_id", entryID))
		return nil, nil, fmt.Errorf("failed to persist reversal: %w", err)
	}

	s.LogInfo(ctx, "Journal entry reversed", slog.String("original_entry_id", entryID), slog.String("reversal_entry_id", reversal.EntryID))
	return &reversal, lines, nil
}

// uniqueStrings returns the distinct values of s, preserving first-seen order.
func uniqueStrings(s []string) []string {
	seen := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
