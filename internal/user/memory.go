package user

import (
	"context"

	"github.com/fkhayef/popbarter/pkg/store"
)

// MemoryRepository keeps profiles in process memory
type MemoryRepository struct {
	profiles *store.Store[Profile]
}

// NewMemoryRepository creates an empty in-memory profile repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: store.New[Profile]()}
}

// Get retrieves a profile by username
func (r *MemoryRepository) Get(ctx context.Context, username string) (*Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, ok := r.profiles.Get(username)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Upsert creates the profile or replaces its cap fields
func (r *MemoryRepository) Upsert(ctx context.Context, p *Profile) (*Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	saved := *p
	saved.UpdatedAt = saved.UpdatedAt.UTC()
	r.profiles.Set(saved.Username, saved)
	return &saved, nil
}
