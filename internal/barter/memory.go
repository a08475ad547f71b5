package barter

import (
	"context"
	"errors"
	"time"

	"github.com/fkhayef/popbarter/pkg/store"
)

var errNoMatch = errors.New("barter: condition not met")

// MemoryRepository keeps barters in process memory
type MemoryRepository struct {
	barters *store.Store[Barter]
}

// NewMemoryRepository creates an empty in-memory barter repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{barters: store.New[Barter]()}
}

// ListByUsername retrieves every barter in a user's books, oldest first
func (r *MemoryRepository) ListByUsername(ctx context.Context, username string) ([]*Barter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items := r.barters.Filter(func(b Barter) bool { return b.Username == username })
	out := make([]*Barter, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}

// Create inserts a new barter
func (r *MemoryRepository) Create(ctx context.Context, b *Barter) (*Barter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := *b
	r.barters.Set(stored.ID, stored)
	return &stored, nil
}

// GetByID retrieves one barter from a user's books
func (r *MemoryRepository) GetByID(ctx context.Context, username, id string) (*Barter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, ok := r.barters.Get(id)
	if !ok || b.Username != username {
		return nil, nil
	}
	return &b, nil
}

// RecordProgress stores a day outcome and moves the barter to pending approval
func (r *MemoryRepository) RecordProgress(ctx context.Context, username, id string, revision int64, estimate float64, note string, at time.Time) (*Barter, error) {
	return r.update(ctx, id, func(b Barter) (Barter, error) {
		if b.Username != username || b.Revision != revision || b.ProgressPending {
			return b, errNoMatch
		}
		b.ExpenseEstimate = estimate
		b.LastProgressNote = note
		b.ProgressPending = true
		b.Revision++
		b.UpdatedAt = at.UTC()
		return b, nil
	})
}

// Approve accepts the pending progression and returns the barter to idle
func (r *MemoryRepository) Approve(ctx context.Context, username, id string, at time.Time) (*Barter, error) {
	return r.update(ctx, id, func(b Barter) (Barter, error) {
		if b.Username != username || !b.ProgressPending {
			return b, errNoMatch
		}
		b.ProgressPending = false
		b.Approved = true
		b.Revision++
		b.UpdatedAt = at.UTC()
		return b, nil
	})
}

func (r *MemoryRepository) update(ctx context.Context, id string, fn func(Barter) (Barter, error)) (*Barter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := r.barters.Update(id, fn)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, errNoMatch) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
