package neural

import (
	"math/rand"
	"time"
)

// Rand is the randomness source used for layout, speeds and fire selection
// *rand.Rand satisfies it, tests inject seeded or scripted sources
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// newDefaultRand returns a time-seeded source
func newDefaultRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// uniform returns a value in [lo, hi)
func uniform(r Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// pick returns a random element index or -1 for empty
func pick(r Rand, n int) int {
	if n <= 0 {
		return -1
	}
	return r.Intn(n)
}
