package offer

import (
	"context"

	"github.com/fkhayef/popbarter/pkg/store"
)

// MemoryRepository keeps offers in process memory
type MemoryRepository struct {
	offers *store.Store[Offer]
}

// NewMemoryRepository creates an empty in-memory offer repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{offers: store.New[Offer]()}
}

// List retrieves every offer in posting order
func (r *MemoryRepository) List(ctx context.Context) ([]*Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items := r.offers.List()
	out := make([]*Offer, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}

// Create inserts a new offer
func (r *MemoryRepository) Create(ctx context.Context, o *Offer) (*Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := *o
	r.offers.Set(stored.ID, stored)
	return &stored, nil
}

// Delete removes an offer by ID
func (r *MemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return r.offers.Delete(id), nil
}
