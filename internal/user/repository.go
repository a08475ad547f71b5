package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fkhayef/popbarter/internal/database"
)

// Repository persists profiles. Get returns (nil, nil) for unknown users.
type Repository interface {
	Get(ctx context.Context, username string) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) (*Profile, error)
}

// SQLRepository handles profile persistence in Postgres or SQLite
type SQLRepository struct {
	db *database.DB
}

// NewRepository creates a new SQL-backed profile repository
func NewRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// Get retrieves a profile by username
func (r *SQLRepository) Get(ctx context.Context, username string) (*Profile, error) {
	query := r.db.Rebind(`
		SELECT username, preset_name, pop_token_cap, cap_source, updated_at
		FROM profiles
		WHERE username = $1
	`)

	p := &Profile{}
	var updatedAt int64
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&p.Username,
		&p.PresetName,
		&p.PopTokenCap,
		&p.CapSource,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p.UpdatedAt = database.FromMillis(updatedAt)

	return p, nil
}

// Upsert creates the profile or replaces its cap fields
func (r *SQLRepository) Upsert(ctx context.Context, p *Profile) (*Profile, error) {
	query := r.db.Rebind(`
		INSERT INTO profiles (username, preset_name, pop_token_cap, cap_source, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username) DO UPDATE
		SET preset_name = excluded.preset_name,
		    pop_token_cap = excluded.pop_token_cap,
		    cap_source = excluded.cap_source,
		    updated_at = excluded.updated_at
		RETURNING username, preset_name, pop_token_cap, cap_source, updated_at
	`)

	saved := &Profile{}
	var updatedAt int64
	err := r.db.QueryRowContext(ctx, query,
		p.Username,
		p.PresetName,
		p.PopTokenCap,
		string(p.CapSource),
		database.ToMillis(p.UpdatedAt),
	).Scan(
		&saved.Username,
		&saved.PresetName,
		&saved.PopTokenCap,
		&saved.CapSource,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	saved.UpdatedAt = database.FromMillis(updatedAt)

	return saved, nil
}
