// Package random provides the seedable uniform source that drives day progression.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Source yields uniform draws in [0, 1).
type Source interface {
	Float64() float64
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Seeded is a goroutine-safe PCG source. Two Seeded values built from the same
// seed produce the same sequence.
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded creates a deterministic source from seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

// New returns a deterministic source when seed is non-zero and a
// crypto-seeded one otherwise.
func New(seed int64) (*Seeded, error) {
	if seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}
	return NewSeeded(seed), nil
}

// Float64 implements Source.
func (s *Seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Fixed always returns the same draw. Useful for pinning an outcome.
type Fixed float64

// Float64 implements Source.
func (f Fixed) Float64() float64 {
	return float64(f)
}
