package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mfoukoue/etude_compta_app/internal/apperrors"
	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
	portsrepo "github.com/mfoukoue/etude_compta_app/internal/core/ports/repositories"
)

type entryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new repository for journal entries and lines.
func NewEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &entryRepository{pool: pool}
}

const entryColumns = `entry_id, journal_id, entry_date, label, reference, dossier_id, validated, created_at, created_by, last_updated_at, last_updated_by`
const lineColumns = `line_id, entry_id, account_code, debit, credit, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (domain.JournalEntry, error) {
	var e domain.JournalEntry
	var date string
	err := row.Scan(
		&e.EntryID,
		&e.JournalID,
		&date,
		&e.Label,
		&e.Reference,
		&e.DossierID,
		&e.Validated,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	e.Date = domain.Date(date)
	return e, err
}

func scanLine(row pgx.Row) (domain.AccountEntry, error) {
	var l domain.AccountEntry
	var debit, credit decimal.Decimal
	err := row.Scan(
		&l.LineID,
		&l.EntryID,
		&l.AccountCode,
		&debit,
		&credit,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	l.Debit = debit
	l.Credit = credit
	return l, err
}

// SaveEntry persists a journal entry header and all its lines within one DB
// transaction. No partial write may ever be observed.
func (r *entryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.AccountEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.JournalID,
		entry.Date.String(),
		entry.Label,
		entry.Reference,
		entry.DossierID,
		entry.Validated,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO account_entries (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.EntryID,
			line.AccountCode,
			line.Debit,
			line.Credit,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute line batch for entry %s: %w", entry.EntryID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction for entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a journal entry header by its primary key.
func (r *entryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	e, err := scanEntry(r.pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}
	return &e, nil
}

// FindLinesByEntryID retrieves the lines of an entry in insertion order.
func (r *entryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.AccountEntry, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM journal_entries WHERE entry_id = $1);`, entryID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check entry %s: %w", entryID, err)
	}
	if !exists {
		return nil, apperrors.ErrNotFound
	}

	query := `SELECT ` + lineColumns + ` FROM account_entries WHERE entry_id = $1 ORDER BY created_at, line_id;`
	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.AccountEntry{}
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}
	return lines, nil
}

// FindEntriesByIDs retrieves entry headers keyed by id. Missing ids are
// absent from the map, not an error.
func (r *entryRepository) FindEntriesByIDs(ctx context.Context, entryIDs []string) (map[string]domain.JournalEntry, error) {
	if len(entryIDs) == 0 {
		return map[string]domain.JournalEntry{}, nil
	}
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = ANY($1);`
	rows, err := r.pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries by ids: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.JournalEntry, len(entryIDs))
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		result[e.EntryID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return result, nil
}

// ListEntries retrieves entry headers, optionally restricted to a journal and
// a date window, sorted by date then insertion order.
func (r *entryRepository) ListEntries(ctx context.Context, journalID string, from, to domain.Date) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE ($1 = '' OR journal_id = $1)
		  AND ($2 = '' OR entry_date >= $2)
		  AND ($3 = '' OR entry_date <= $3)
		ORDER BY entry_date, created_at;
	`
	rows, err := r.pool.Query(ctx, query, journalID, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return entries, nil
}

// ListLinesByAccountCodes retrieves every line touching one of the given
// accounts.
func (r *entryRepository) ListLinesByAccountCodes(ctx context.Context, codes []string) ([]domain.AccountEntry, error) {
	if len(codes) == 0 {
		return []domain.AccountEntry{}, nil
	}
	query := `SELECT ` + lineColumns + ` FROM account_entries WHERE account_code = ANY($1) ORDER BY created_at, line_id;`
	rows, err := r.pool.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines by account codes: %w", err)
	}
	defer rows.Close()

	lines := []domain.AccountEntry{}
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows: %w", err)
	}
	return lines, nil
}

// Repositories bundles the pgsql implementations for the service container.
func Repositories(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: NewAccountRepository(pool),
		JournalRepo: NewJournalRepository(pool),
		EntryRepo:   NewEntryRepository(pool),
	}
}
