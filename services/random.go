package services

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandomSource produces values in [0, 1). Price, rating and seed-score
// synthesis all go through it so tests can pin exact values.
type RandomSource interface {
	Float64() float64
}

type lockedRandom struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSource returns a goroutine-safe source seeded with seed.
func NewRandomSource(seed uint64) RandomSource {
	return &lockedRandom{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSeededRandom seeds from the wall clock.
func NewTimeSeededRandom() RandomSource {
	return NewRandomSource(uint64(time.Now().UnixNano()))
}

func (r *lockedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}

// Clock returns the current time; injected for deterministic ids in tests.
type Clock func() time.Time
