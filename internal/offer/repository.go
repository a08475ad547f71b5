package offer

import (
	"context"
	"fmt"

	"github.com/fkhayef/popbarter/internal/database"
)

// Repository persists marketplace offers
type Repository interface {
	List(ctx context.Context) ([]*Offer, error)
	Create(ctx context.Context, o *Offer) (*Offer, error)
	// Delete reports whether an offer was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// SQLRepository handles offer persistence in Postgres or SQLite
type SQLRepository struct {
	db *database.DB
}

// NewRepository creates a new SQL-backed offer repository
func NewRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// List retrieves every offer in posting order
func (r *SQLRepository) List(ctx context.Context) ([]*Offer, error) {
	query := `
		SELECT id, username, description, reveal, preset, token_amount, cap, created_at
		FROM offers
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	offers := []*Offer{}
	for rows.Next() {
		o := &Offer{}
		var createdAt int64
		if err := rows.Scan(&o.ID, &o.User, &o.Offer, &o.Reveal, &o.Preset, &o.TokenAmount, &o.Cap, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		o.CreatedAt = database.FromMillis(createdAt)
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate offers: %w", err)
	}

	return offers, nil
}

// Create inserts a new offer
func (r *SQLRepository) Create(ctx context.Context, o *Offer) (*Offer, error) {
	query := r.db.Rebind(`
		INSERT INTO offers (id, username, description, reveal, preset, token_amount, cap, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)

	_, err := r.db.ExecContext(ctx, query,
		o.ID, o.User, o.Offer, o.Reveal, o.Preset, o.TokenAmount, o.Cap, database.ToMillis(o.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	created := *o
	created.CreatedAt = database.FromMillis(database.ToMillis(o.CreatedAt))
	return &created, nil
}

// Delete removes an offer by ID
func (r *SQLRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := r.db.Rebind(`DELETE FROM offers WHERE id = $1`)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete offer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
