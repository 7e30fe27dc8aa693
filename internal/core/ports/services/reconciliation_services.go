package services

import (
	"context"

	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
)

// ReconciliationSvcFacade exposes automatic bank statement matching.
type ReconciliationSvcFacade interface {
	// AutoMatch pairs imported statement lines one-to-one against journal
	// entries touching the account within the date range. Ambiguous amounts
	// are left unmatched rather than arbitrarily paired.
	AutoMatch(ctx context.Context, accountCode string, from, to domain.Date, lines []domain.StatementLine) (*domain.ReconciliationResult, error)
}
