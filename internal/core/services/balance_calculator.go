package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mfoukoue/etude_compta_app/internal/apperrors"
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	portsrepo "github.com/mfoukoue/etude_compta_app/internal/core/ports/repositories"
	portssvc "github.com/mfoukoue/etude_compta_app/internal/core/ports/services"
)

// balanceCalculator implements the shared period aggregation primitive.
// It is a single pass over the relevant lines: entry headers are prefetched
// once and dates resolved through a map, not by re-filtering the full entry
// set per account.
type balanceCalculator struct {
	BaseService
	entryRepo portsrepo.EntryReader
}

// NewBalanceCalculator creates a new BalanceCalculator.
func NewBalanceCalculator(entryRepo portsrepo.EntryReader) portssvc.BalanceSvcFacade {
	return &balanceCalculator{entryRepo: entryRepo}
}

var _ portssvc.BalanceSvcFacade = (*balanceCalculator)(nil)

// ComputeBalances accumulates raw debit and credit sums per account.
// Partition by the owning entry's date: before from -> opening bucket,
// from through to inclusive -> movement bucket, after to -> excluded.
// Debits and credits are kept separate; netting is a report-level decision.
//
// A line whose owning entry cannot be resolved is an integrity gap: it is
// logged and excluded from aggregation rather than aborting the whole report.
func (s *balanceCalculator) ComputeBalances(ctx context.Context, accountCodes []string, from, to domain.Date) (map[string]domain.PeriodTotals, error) {
	lines, err := s.entryRepo.ListLinesByAccountCodes(ctx, accountCodes)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account entry lines")
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
		s.LogError(ctx, err, "Failed to resolve entry headers")
		return nil, fmt.Errorf("failed to resolve entries: %w", err)
	}

	totals := make(map[string]domain.PeriodTotals, len(accountCodes))
	gaps := 0
	for _, line := range lines {
		entry, ok := entries[line.EntryID]
		if !ok {
			gaps++
			s.LogWarn(ctx, "Skipping orphan account entry",
				slog.String("line_id", line.LineID),
				slog.String("entry_id", line.EntryID),
				slog.String("account_code", line.AccountCode),
				slog.String("error", apperrors.ErrIntegrityGap.Error()))
			continue
		}
		if entry.Date.After(to) {
			continue
		}
		t := totals[line.AccountCode]
		if entry.Date.Before(from) {
			t.DebitOpening = t.DebitOpening.Add(line.Debit)
			t.CreditOpening = t.CreditOpening.Add(line.Credit)
		} else {
			t.DebitMovement = t.DebitMovement.Add(line.Debit)
			t.CreditMovement = t.CreditMovement.Add(line.Credit)
		}
		totals[line.AccountCode] = t
	}

	if gaps > 0 {
		s.LogWarn(ctx, "Balance computation skipped orphan lines", slog.Int("orphan_count", gaps))
	}
	return totals, nil
}
