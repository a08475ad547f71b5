package message

import (
	"context"

	"github.com/fkhayef/popbarter/pkg/store"
)

// MemoryRepository keeps messages in process memory
type MemoryRepository struct {
	messages *store.Store[Message]
}

// NewMemoryRepository creates an empty in-memory message repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{messages: store.New[Message]()}
}

// Create inserts a new message
func (r *MemoryRepository) Create(ctx context.Context, m *Message) (*Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := *m
	r.messages.Set(stored.ID, stored)
	return &stored, nil
}

// ListByOffer retrieves messages about an offer in send order
func (r *MemoryRepository) ListByOffer(ctx context.Context, offerID string) ([]*Message, error) {
	return r.filter(ctx, func(m Message) bool { return m.OfferID == offerID })
}

// ListThread retrieves the two-way conversation between a and b in send order
func (r *MemoryRepository) ListThread(ctx context.Context, a, b string) ([]*Message, error) {
	return r.filter(ctx, func(m Message) bool {
		return (m.From == a && m.To == b) || (m.From == b && m.To == a)
	})
}

// ListContacts retrieves everyone username has sent to or received from
func (r *MemoryRepository) ListContacts(ctx context.Context, username string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seen := map[string]bool{username: true}
	contacts := []string{}
	for _, m := range r.messages.List() {
		var other string
		switch username {
		case m.From:
			other = m.To
		case m.To:
			other = m.From
		default:
			continue
		}
		if !seen[other] {
			seen[other] = true
			contacts = append(contacts, other)
		}
	}
	return contacts, nil
}

func (r *MemoryRepository) filter(ctx context.Context, keep func(Message) bool) ([]*Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items := r.messages.Filter(keep)
	out := make([]*Message, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}
