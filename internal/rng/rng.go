// Package rng wraps math/rand with a per-battle, explicitly seeded source.
//
// A battle engine cannot use a package-level random source: tournaments and
// sweeps run many battles concurrently on a worker pool, and two battles
// sharing one *rand.Rand would both lose determinism (reproducible replay
// requires it) and race on the source's internal state. This package holds
// the source as a value on a Source struct, one per battle, with the same
// wrapper-function shape a package-level source would expose.
package rng

import "math/rand"

// Source is a per-battle random source. The zero value is invalid; use New
// or Seed.
type Source struct {
	r *rand.Rand
}

// Seed returns a Source deterministically derived from seed. Two Sources
// built from the same seed produce identical output sequences.
func Seed(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a pseudo-random number in [0.0, 1.0).
func (s *Source) Float64() float64 { return s.r.Float64() }

// Intn returns a pseudo-random number in [0, n).
func (s *Source) Intn(n int) int { return s.r.Intn(n) }

// Shuffle pseudo-randomly permutes n elements via swap.
func (s *Source) Shuffle(n int, swap func(i, j int)) { s.r.Shuffle(n, swap) }

// Int63 returns a non-negative pseudo-random 63-bit integer, used to derive
// per-battle seeds for a sweep or tournament from one top-level seed.
func (s *Source) Int63() int64 { return s.r.Int63() }
