package generation

import (
	"math/rand"
	"time"
)

// NewSeededRNG creates a seeded random number generator.
// If seed is 0, the current time is used.
func NewSeededRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
