// ABOUTME: Randomization primitives used by the workout generator.
// ABOUTME: Shuffling, unique sampling, ranged integers and cyclic repetition.
package random

import (
	"math/rand/v2"
	"time"
)

// Rand is the source of randomness for workout generation.
// Tests construct one with a fixed seed so results are reproducible.
type Rand struct {
	r *rand.Rand
}

// New returns a Rand seeded from the current time.
func New() *Rand {
	now := uint64(time.Now().UnixNano())
	return NewSeeded(now, now>>32)
}

// NewSeeded returns a deterministic Rand.
func NewSeeded(seed1, seed2 uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed1, seed2))}
}

// IntN returns a uniform integer in [0, n). n must be positive.
func (r *Rand) IntN(n int) int {
	return r.r.IntN(n)
}

// IntInclusive returns a uniform integer in [min, max].
// Misconfigured bounds (min > max) are swapped rather than rejected.
func (r *Rand) IntInclusive(min, max int) int {
	if min > max {
		min, max = max, min
	}
	return min + r.r.IntN(max-min+1)
}

// Shuffle permutes list in place (Fisher-Yates) and returns it for chaining.
func Shuffle[T any](r *Rand, list []T) []T {
	for i := len(list) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		list[i], list[j] = list[j], list[i]
	}
	return list
}

// SampleUnique returns up to n distinct elements of list in random order.
// The input slice is not modified.
func SampleUnique[T any](r *Rand, list []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	cp := make([]T, len(list))
	copy(cp, list)
	Shuffle(r, cp)
	if n < len(cp) {
		cp = cp[:n]
	}
	return cp
}

// RepeatToLength cycles through list until the result has exactly length elements.
func RepeatToLength[T any](list []T, length int) []T {
	if len(list) == 0 || length <= 0 {
		return []T{}
	}
	out := make([]T, length)
	for i := range out {
		out[i] = list[i%len(list)]
	}
	return out
}
