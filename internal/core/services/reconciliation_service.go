package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mfoukoue/etude_compta_app/internal/apperrors"
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	portsrepo "github.com/mfoukoue/etude_compta_app/internal/core/ports/repositories"
	portssvc "github.com/mfoukoue/etude_compta_app/internal/core/ports/services"
)

// reconciliationService pairs imported bank statement lines against posted
// journal entries touching one account.
type reconciliationService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	entryRepo   portsrepo.EntryReader
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(accountRepo portsrepo.AccountReader, entryRepo portsrepo.EntryReader) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{accountRepo: accountRepo, entryRepo: entryRepo}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// AutoMatch scans journal entries whose lines touch accountCode within
// [from, to] and pairs each statement line to at most one entry. Primary key
// is amount equality on the opposite side (a CREDIT statement line, money
// arriving at the bank, matches a debit movement on the account); tie-break
// is nearest date. Matching is one-to-one: a consumed entry leaves the
// candidate pool. When two candidates are equally close in date the line is
// left unmatched rather than arbitrarily paired.
func (s *reconciliationService) AutoMatch(ctx context.Context, accountCode string, from, to domain.Date, statementLines []domain.StatementLine) (*domain.ReconciliationResult, error) {
	if _, err := s.accountRepo.FindAccountByCode(ctx, accountCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountCode)
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}

	movements, err := s.collectMovements(ctx, accountCode, from, to)
	if err != nil {
		return nil, err
	}

	result := &domain.ReconciliationResult{
		AccountCode:        accountCode,
		From:               from,
		To:                 to,
		Matched:            []domain.MatchedPair{},
		UnmatchedStatement: []domain.StatementLine{},
		UnmatchedEntries:   []domain.EntryMovement{},
	}

	consumed := make(map[string]bool, len(movements))
	for _, line := range statementLines {
		best := s.pickCandidate(line, movements, consumed)
		if best == nil {
			result.UnmatchedStatement = append(result.UnmatchedStatement, line)
			continue
		}
		consumed[best.EntryID] = true
		result.Matched = append(result.Matched, domain.MatchedPair{Statement: line, Entry: *best})
	}

	for _, m := range movements {
		if !consumed[m.EntryID] {
			result.UnmatchedEntries = append(result.UnmatchedEntries, m)
		}
	}

	s.LogInfo(ctx, "Automatic reconciliation completed",
		slog.String("account_code", accountCode),
		slog.Int("matched", len(result.Matched)),
		slog.Int("unmatched_statement", len(result.UnmatchedStatement)),
		slog.Int("unmatched_entries", len(result.UnmatchedEntries)))
	return result, nil
}

// collectMovements aggregates, per journal entry dated within the window, the
// entry's lines touching the account into one debit/credit movement.
func (s *reconciliationService) collectMovements(ctx context.Context, accountCode string, from, to domain.Date) ([]domain.EntryMovement, error) {
	lines, err := s.entryRepo.ListLinesByAccountCodes(ctx, []string{accountCode})
	if err != nil {
		return nil, fmt.Errorf("failed to list lines: %w", err)
	}
	entryIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.EntryID]; ok {
			continue
		}
		seen[line.EntryID] = struct{}{}
		entryIDs = append(entryIDs, line.EntryID)
	}
	entries, err := s.entryRepo.FindEntriesByIDs(ctx, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve entries: %w", err)
	}

	byEntry := make(map[string]*domain.EntryMovement)
	order := make([]string, 0, len(entryIDs))
	for _, line := range lines {
		entry, ok := entries[line.EntryID]
		if !ok {
			s.LogWarn(ctx, "Skipping orphan account entry in reconciliation",
				slog.String("line_id", line.LineID),
				slog.String("entry_id", line.EntryID))
			continue
		}
		if entry.Date.Before(from) || entry.Date.After(to) {
			continue
		}
		m, ok := byEntry[entry.EntryID]
		if !ok {
			m = &domain.EntryMovement{
				EntryID:   entry.EntryID,
				Date:      entry.Date,
				Label:     entry.Label,
				Reference: entry.Reference,
			}
			byEntry[entry.EntryID] = m
			order = append(order, entry.EntryID)
		}
		m.Debit = m.Debit.Add(line.Debit)
		m.Credit = m.Credit.Add(line.Credit)
	}

	movements := make([]domain.EntryMovement, 0, len(order))
	for _, id := range order {
		movements = append(movements, *byEntry[id])
	}
	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Date.Before(movements[j].Date)
	})
	return movements, nil
}

// pickCandidate returns the single unconsumed movement matching the
// statement line's amount on the opposite side at the smallest date distance,
// or nil when none exists or the nearest distance is shared by more than one
// candidate.
func (s *reconciliationService) pickCandidate(line domain.StatementLine, movements []domain.EntryMovement, consumed map[string]bool) *domain.EntryMovement {
	bestDist := -1
	var best *domain.EntryMovement
	ambiguous := false
	for i := range movements {
		m := &movements[i]
		if consumed[m.EntryID] {
			continue
		}
		amount := m.Debit
		if line.Direction == domain.StatementDebit {
			amount = m.Credit
		}
		if !amount.Equal(line.Amount) || amount.IsZero() {
			continue
		}
		dist := line.Date.DaysBetween(m.Date)
		switch {
		case best == nil || dist < bestDist:
			best = m
			bestDist = dist
			ambiguous = false
		case dist == bestDist:
			ambiguous = true
		}
	}
	if ambiguous {
		return nil
	}
	return best
}
