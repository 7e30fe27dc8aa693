package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfoukoue/etude_compta_app/internal/apperrors"
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	portsrepo "github.com/mfoukoue/etude_compta_app/internal/core/ports/repositories"
)

const uniqueViolationCode = "23505"

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new repository for chart-of-accounts data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &accountRepository{pool: pool}
}

const accountColumns = `code, label, class_code, account_type, parent_code, nature, is_summary, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var acc domain.Account
	var parentCode *string
	err := row.Scan(
		&acc.Code,
		&acc.Label,
		&acc.ClassCode,
		&acc.Type,
		&parentCode,
		&acc.Nature,
		&acc.IsSummary,
		&acc.IsActive,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	if parentCode != nil {
		acc.ParentCode = *parentCode
	}
	return acc, nil
}

// SaveAccount inserts a new account. Duplicate codes map to ErrConflict.
func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	var parentCode *string
	if account.ParentCode != "" {
		parentCode = &account.ParentCode
	}

	_, err := r.pool.Exec(ctx, query,
		account.Code,
		account.Label,
		account.ClassCode,
		account.Type,
		parentCode,
		account.Nature,
		account.IsSummary,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrConflict, account.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", account.Code, err)
	}
	return nil
}

// FindAccountByCode retrieves an account by its unique code.
func (r *accountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`
	acc, err := scanAccount(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return &acc, nil
}

// FindAccountsByCodes retrieves multiple accounts keyed by code. Missing codes
// are simply absent from the map.
func (r *accountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = ANY($1);`
	rows, err := r.pool.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by codes: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(codes))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		result[acc.Code] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return result, nil
}

// FindAccountsByPrefix retrieves accounts whose code starts with prefix,
// sorted by code. An empty prefix lists the whole chart.
func (r *accountRepository) FindAccountsByPrefix(ctx context.Context, prefix string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code LIKE $1 || '%' ORDER BY code;`
	rows, err := r.pool.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates an existing account's mutable fields.
func (r *accountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET label = $2, account_type = $3, parent_code = $4, nature = $5, is_summary = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE code = $1;
	`
	var parentCode *string
	if account.ParentCode != "" {
		parentCode = &account.ParentCode
	}
	tag, err := r.pool.Exec(ctx, query,
		account.Code,
		account.Label,
		account.Type,
		parentCode,
		account.Nature,
		account.IsSummary,
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.Code, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account unless posted lines still reference it.
func (r *accountRepository) DeleteAccount(ctx context.Context, code string) error {
	var referenced bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM account_entries WHERE account_code = $1);`, code,
	).Scan(&referenced)
	if err != nil {
		return fmt.Errorf("failed to check references for account %s: %w", code, err)
	}
	if referenced {
		return fmt.Errorf("%w: account %s is referenced by posted entries", apperrors.ErrConflict, code)
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE code = $1;`, code)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
