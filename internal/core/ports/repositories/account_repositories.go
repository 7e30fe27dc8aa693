package repositories

import (
	"context"

	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByCode retrieves a specific account by its unique code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves multiple accounts keyed by code.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// FindAccountsByPrefix retrieves accounts whose code starts with prefix,
	// sorted by code ascending (lexicographic). An empty prefix lists all.
	FindAccountsByPrefix(ctx context.Context, prefix string) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account. Returns apperrors.ErrConflict when
	// the code already exists.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's mutable fields.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. Returns apperrors.ErrConflict while
	// any AccountEntry references the code.
	DeleteAccount(ctx context.Context, code string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
