// Package store provides a generic, thread-safe, in-memory keyed collection.
// It backs the "memory" storage driver and the repository fakes used in tests.
package store

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Update when the key is absent.
var ErrNotFound = errors.New("store: item not found")

// Store is a thread-safe, insertion-ordered map of T keyed by string.
type Store[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

// New creates an empty Store.
func New[T any]() *Store[T] {
	return &Store[T]{items: make(map[string]T)}
}

// Set stores an item. Overwriting keeps the original insertion position.
func (s *Store[T]) Set(id string, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[id]; !exists {
		s.order = append(s.order, id)
	}
	s.items[id] = item
}

// Get retrieves an item by ID.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

// Update applies fn to the item stored under id while holding the write lock,
// so fn observes and replaces the item atomically. If fn returns an error the
// item is left untouched and the error is returned.
func (s *Store[T]) Update(id string, fn func(T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	item, ok := s.items[id]
	if !ok {
		return zero, ErrNotFound
	}
	updated, err := fn(item)
	if err != nil {
		return zero, err
	}
	s.items[id] = updated
	return updated, nil
}

// Delete removes an item. Returns true if it existed.
func (s *Store[T]) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[id]; !exists {
		return false
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns all items in insertion order.
func (s *Store[T]) List() []T {
	return s.Filter(nil)
}

// Filter returns the items for which keep returns true, in insertion order.
// A nil keep returns everything.
func (s *Store[T]) Filter(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]T, 0, len(s.order))
	for _, id := range s.order {
		item := s.items[id]
		if keep == nil || keep(item) {
			result = append(result, item)
		}
	}
	return result
}
