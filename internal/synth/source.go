package synth

import (
	"math/rand"
	"sync"
)

// RandomSource yields uniform values in [0, 1). Each draw advances the
// source, so a source must not be shared between goroutines unless it is
// wrapped with NewLockedSource.
type RandomSource interface {
	Float64() float64
}

// NewSource returns a deterministic source for seed.
func NewSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

type lockedSource struct {
	mu  sync.Mutex
	src RandomSource
}

// NewLockedSource serializes draws from src.
func NewLockedSource(src RandomSource) RandomSource {
	return &lockedSource{src: src}
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}
