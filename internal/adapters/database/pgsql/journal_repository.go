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

type journalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates a new repository for the journal registry.
func NewJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &journalRepository{pool: pool}
}

const journalColumns = `journal_id, code, label, journal_type, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanJournal(row pgx.Row) (domain.Journal, error) {
	var j domain.Journal
	err := row.Scan(
		&j.JournalID,
		&j.Code,
		&j.Label,
		&j.Type,
		&j.IsActive,
		&j.CreatedAt,
		&j.CreatedBy,
		&j.LastUpdatedAt,
		&j.LastUpdatedBy,
	)
	return j, err
}

// SaveJournal inserts a new journal. Duplicate codes map to ErrConflict.
func (r *journalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		journal.JournalID,
		journal.Code,
		journal.Label,
		journal.Type,
		journal.IsActive,
		journal.CreatedAt,
		journal.CreatedBy,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: journal code %s already exists", apperrors.ErrConflict, journal.Code)
		}
		return fmt.Errorf("failed to save journal %s: %w", journal.Code, err)
	}
	return nil
}

// FindJournalByID retrieves a journal by its primary key.
func (r *journalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`
	j, err := scanJournal(r.pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}
	return &j, nil
}

// FindJournalByCode retrieves a journal by its unique code.
func (r *journalRepository) FindJournalByCode(ctx context.Context, code string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE code = $1;`
	j, err := scanJournal(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by code %s: %w", code, err)
	}
	return &j, nil
}

// ListJournals retrieves all journals sorted by code.
func (r *journalRepository) ListJournals(ctx context.Context) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals ORDER BY code;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}
	return journals, nil
}

// UpdateJournal updates an existing journal's mutable fields.
func (r *journalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	query := `
		UPDATE journals
		SET code = $2, label = $3, journal_type = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE journal_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		journal.JournalID,
		journal.Code,
		journal.Label,
		journal.Type,
		journal.IsActive,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: journal code %s already exists", apperrors.ErrConflict, journal.Code)
		}
		return fmt.Errorf("failed to update journal %s: %w", journal.JournalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteJournal removes a journal unless posted entries still reference it.
func (r *journalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	var referenced bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM journal_entries WHERE journal_id = $1);`, journalID,
	).Scan(&referenced)
	if err != nil {
		return fmt.Errorf("failed to check references for journal %s: %w", journalID, err)
	}
	if referenced {
		return fmt.Errorf("%w: journal %s is referenced by posted entries", apperrors.ErrConflict, journalID)
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1;`, journalID)
	if err != nil {
		return fmt.Errorf("failed to delete journal %s: %w", journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
