package barter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fkhayef/popbarter/internal/database"
)

// Repository persists barters.
// Lookups return (nil, nil) when no row matches. The two progression writes are
// conditional on the state they transition from, so a caller that lost a race
// also gets (nil, nil) and must re-read to find out why.
type Repository interface {
	ListByUsername(ctx context.Context, username string) ([]*Barter, error)
	Create(ctx context.Context, b *Barter) (*Barter, error)
	GetByID(ctx context.Context, username, id string) (*Barter, error)
	// RecordProgress applies a day outcome if the barter is idle and still at revision.
	RecordProgress(ctx context.Context, username, id string, revision int64, estimate float64, note string, at time.Time) (*Barter, error)
	// Approve clears a pending progression.
	Approve(ctx context.Context, username, id string, at time.Time) (*Barter, error)
}

// SQLRepository handles barter persistence in Postgres or SQLite
type SQLRepository struct {
	db *database.DB
}

// NewRepository creates a new SQL-backed barter repository
func NewRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

const barterColumns = `id, username, from_user, to_user, your_preset, other_preset,
	your_tokens_given, other_tokens_received, your_cap, other_cap, date,
	expense_estimate, progress_pending, last_progress_note, approved, revision,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBarter(row rowScanner) (*Barter, error) {
	b := &Barter{}
	var createdAt, updatedAt int64
	if err := row.Scan(
		&b.ID,
		&b.Username,
		&b.FromUser,
		&b.ToUser,
		&b.YourPreset,
		&b.OtherPreset,
		&b.YourTokensGiven,
		&b.OtherTokensReceived,
		&b.YourCap,
		&b.OtherCap,
		&b.Date,
		&b.ExpenseEstimate,
		&b.ProgressPending,
		&b.LastProgressNote,
		&b.Approved,
		&b.Revision,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	b.CreatedAt = database.FromMillis(createdAt)
	b.UpdatedAt = database.FromMillis(updatedAt)
	return b, nil
}

// ListByUsername retrieves every barter in a user's books, oldest first
func (r *SQLRepository) ListByUsername(ctx context.Context, username string) ([]*Barter, error) {
	query := r.db.Rebind(`
		SELECT ` + barterColumns + `
		FROM barters
		WHERE username = $1
		ORDER BY seq ASC
	`)

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list barters: %w", err)
	}
	defer rows.Close()

	barters := []*Barter{}
	for rows.Next() {
		b, err := scanBarter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan barter: %w", err)
		}
		barters = append(barters, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate barters: %w", err)
	}

	return barters, nil
}

// Create inserts a new barter
func (r *SQLRepository) Create(ctx context.Context, b *Barter) (*Barter, error) {
	query := r.db.Rebind(`
		INSERT INTO barters (id, username, from_user, to_user, your_preset, other_preset,
			your_tokens_given, other_tokens_received, your_cap, other_cap, date,
			expense_estimate, progress_pending, last_progress_note, approved, revision,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING ` + barterColumns)

	created, err := scanBarter(r.db.QueryRowContext(ctx, query,
		b.ID,
		b.Username,
		b.FromUser,
		b.ToUser,
		b.YourPreset,
		b.OtherPreset,
		b.YourTokensGiven,
		b.OtherTokensReceived,
		b.YourCap,
		b.OtherCap,
		b.Date,
		b.ExpenseEstimate,
		b.ProgressPending,
		b.LastProgressNote,
		b.Approved,
		b.Revision,
		database.ToMillis(b.CreatedAt),
		database.ToMillis(b.UpdatedAt),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create barter: %w", err)
	}

	return created, nil
}

// GetByID retrieves one barter from a user's books
func (r *SQLRepository) GetByID(ctx context.Context, username, id string) (*Barter, error) {
	query := r.db.Rebind(`
		SELECT ` + barterColumns + `
		FROM barters
		WHERE username = $1 AND id = $2
	`)

	b, err := scanBarter(r.db.QueryRowContext(ctx, query, username, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get barter: %w", err)
	}

	return b, nil
}

// RecordProgress stores a day outcome and moves the barter to pending approval
func (r *SQLRepository) RecordProgress(ctx context.Context, username, id string, revision int64, estimate float64, note string, at time.Time) (*Barter, error) {
	query := r.db.Rebind(`
		UPDATE barters
		SET expense_estimate = $1,
		    last_progress_note = $2,
		    updated_at = $3,
		    progress_pending = TRUE,
		    revision = revision + 1
		WHERE username = $4 AND id = $5 AND revision = $6 AND progress_pending = FALSE
		RETURNING ` + barterColumns)

	b, err := scanBarter(r.db.QueryRowContext(ctx, query, estimate, note, database.ToMillis(at), username, id, revision))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to record barter progress: %w", err)
	}

	return b, nil
}

// Approve accepts the pending progression and returns the barter to idle
func (r *SQLRepository) Approve(ctx context.Context, username, id string, at time.Time) (*Barter, error) {
	query := r.db.Rebind(`
		UPDATE barters
		SET updated_at = $1,
		    progress_pending = FALSE,
		    approved = TRUE,
		    revision = revision + 1
		WHERE username = $2 AND id = $3 AND progress_pending = TRUE
		RETURNING ` + barterColumns)

	b, err := scanBarter(r.db.QueryRowContext(ctx, query, database.ToMillis(at), username, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to approve barter progress: %w", err)
	}

	return b, nil
}
