package services

import (
	"context"

	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	"github.com/mfoukoue/etude_compta_app/internal/dto"
)

// AccountSvcFacade exposes chart-of-accounts management.
type AccountSvcFacade interface {
	// CreateAccount registers a new account in the chart of accounts.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts lists accounts, optionally filtered by code prefix.
	ListAccounts(ctx context.Context, prefix string) ([]domain.Account, error)

	// UpdateAccount applies partial updates to an account. The code itself is
	// immutable.
	UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account, failing while entries reference it.
	DeleteAccount(ctx context.Context, code string) error
}
