// Package dice provides the randomness abstraction shared by combat and
// exploration, plus the rounding rule the game formulas are written against.
package dice

import (
	"math"
	"math/rand"
	"time"
)

// Source is the randomness provider for every roll in the game.
// *math/rand.Rand satisfies it, which keeps seeded runs reproducible.
//
// Implementations need not be safe for concurrent use; the engine only
// calls them from the host's control goroutine.
type Source interface {
	// Intn returns a value in [0, n). Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// NewSeededSource returns a Source backed by math/rand.
// A seed of 0 picks a time based seed.
func NewSeededSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Round rounds half up (2.5 -> 3), matching the integer results the stat and
// damage formulas expect. Only defined for the non-negative values they use.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}
