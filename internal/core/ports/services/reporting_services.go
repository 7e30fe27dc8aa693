package services

import (
	"context"

	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
)

// BalanceSvcFacade is the shared aggregation primitive: period-bounded raw
// debit/credit totals per account. All statement generators delegate to it.
type BalanceSvcFacade interface {
	// ComputeBalances sums debits and credits per account, partitioned into
	// an opening bucket (entry date before from) and a movement bucket (from
	// through to inclusive). Entries dated after to are excluded. Orphan
	// lines whose owning entry cannot be resolved are logged and skipped.
	ComputeBalances(ctx context.Context, accountCodes []string, from, to domain.Date) (map[string]domain.PeriodTotals, error)
}

// ReportingSvcFacade exposes the four regulatory statement generators. Each
// is a pure projection of the balance calculator's output: calling one twice
// with identical arguments and no intervening postings yields identical
// output.
type ReportingSvcFacade interface {
	// TrialBalance produces the Balance: per-account opening/movement/closing
	// debit and credit columns, sorted by account code ascending.
	TrialBalance(ctx context.Context, from, to domain.Date) ([]domain.BalanceLine, error)

	// Bilan produces the balance sheet as of a date, cumulative from
	// inception.
	Bilan(ctx context.Context, asOf domain.Date) (*domain.Bilan, error)

	// CompteResultat produces the income statement over a period.
	CompteResultat(ctx context.Context, from, to domain.Date) (*domain.IncomeStatement, error)

	// GrandLivre produces the general ledger over a period, optionally
	// restricted to an account code range (string comparison).
	GrandLivre(ctx context.Context, from, to domain.Date, fromAccount, toAccount string) ([]domain.LedgerAccount, error)
}
