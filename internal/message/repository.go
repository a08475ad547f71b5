package message

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fkhayef/popbarter/internal/database"
)

// Repository persists messages. Messages are append-only.
type Repository interface {
	Create(ctx context.Context, m *Message) (*Message, error)
	ListByOffer(ctx context.Context, offerID string) ([]*Message, error)
	// ListThread returns messages in either direction between a and b.
	ListThread(ctx context.Context, a, b string) ([]*Message, error)
	// ListContacts returns counterparts of username ordered by first exchange.
	ListContacts(ctx context.Context, username string) ([]string, error)
}

// SQLRepository handles message persistence in Postgres or SQLite
type SQLRepository struct {
	db *database.DB
}

// NewRepository creates a new SQL-backed message repository
func NewRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// Create inserts a new message
func (r *SQLRepository) Create(ctx context.Context, m *Message) (*Message, error) {
	query := r.db.Rebind(`
		INSERT INTO messages (id, from_user, to_user, offer_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)

	if _, err := r.db.ExecContext(ctx, query, m.ID, m.From, m.To, m.OfferID, m.Text, database.ToMillis(m.CreatedAt)); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	created := *m
	created.CreatedAt = database.FromMillis(database.ToMillis(m.CreatedAt))
	return &created, nil
}

// ListByOffer retrieves messages about an offer in send order
func (r *SQLRepository) ListByOffer(ctx context.Context, offerID string) ([]*Message, error) {
	query := r.db.Rebind(`
		SELECT id, from_user, to_user, offer_id, body, created_at
		FROM messages
		WHERE offer_id = $1
		ORDER BY seq ASC
	`)

	rows, err := r.db.QueryContext(ctx, query, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offer messages: %w", err)
	}
	return scanMessages(rows)
}

// ListThread retrieves the two-way conversation between a and b in send order
func (r *SQLRepository) ListThread(ctx context.Context, a, b string) ([]*Message, error) {
	query := r.db.Rebind(`
		SELECT id, from_user, to_user, offer_id, body, created_at
		FROM messages
		WHERE (from_user = $1 AND to_user = $2) OR (from_user = $3 AND to_user = $4)
		ORDER BY seq ASC
	`)

	rows, err := r.db.QueryContext(ctx, query, a, b, b, a)
	if err != nil {
		return nil, fmt.Errorf("failed to list thread: %w", err)
	}
	return scanMessages(rows)
}

// ListContacts retrieves everyone username has sent to or received from
func (r *SQLRepository) ListContacts(ctx context.Context, username string) ([]string, error) {
	query := r.db.Rebind(`
		SELECT counterpart, MIN(seq) AS first_seq
		FROM (
			SELECT to_user AS counterpart, seq FROM messages WHERE from_user = $1
			UNION ALL
			SELECT from_user AS counterpart, seq FROM messages WHERE to_user = $2
		) exchanged
		GROUP BY counterpart
		ORDER BY first_seq ASC
	`)

	rows, err := r.db.QueryContext(ctx, query, username, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []string{}
	for rows.Next() {
		var name string
		var firstSeq int64
		if err := rows.Scan(&name, &firstSeq); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		if name != username {
			contacts = append(contacts, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}

	return contacts, nil
}

func scanMessages(rows *sql.Rows) ([]*Message, error) {
	defer rows.Close()

	messages := []*Message{}
	for rows.Next() {
		m := &Message{}
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.From, &m.To, &m.OfferID, &m.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.CreatedAt = database.FromMillis(createdAt)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return messages, nil
}
