// Package rng provides the uniform random sources behind every simulated coin flip.
package rng

import (
	"math/rand/v2"
)

// Source produces uniform float64 values in [0, 1).
// A Source is not safe for concurrent use; give each goroutine its own.
type Source interface {
	Float64() float64
}

// NewSeeded returns a reproducible source for the given seed
func NewSeeded(seed uint64) Source {
	return NewStream(seed, 0)
}

// NewStream returns the independent stream identified by (seed, stream).
// Streams sharing a seed but differing in stream number do not overlap in practice,
// so parallel workers can each own one without coordination.
func NewStream(seed, stream uint64) Source {
	return rand.New(rand.NewPCG(seed, stream^streamSalt)) //nolint:gosec // simulation randomness, not security critical
}

// NewSeed draws a fresh seed from the runtime's randomly seeded generator
func NewSeed() uint64 {
	return rand.Uint64() //nolint:gosec // simulation randomness, not security critical
}

// Bernoulli returns true with probability p using a single draw from src
func Bernoulli(src Source, p float64) bool {
	return src.Float64() < p
}

// Sequence replays a fixed list of values, cycling when exhausted. Used to script outcomes in tests.
type Sequence struct {
	Values []float64
	pos    int
}

// Float64 returns the next scripted value
func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	return v
}

const streamSalt = 0x9e3779b97f4a7c15
