package paint

import "math/rand/v2"

// Rand is the only source of randomness used by the effect generators.
// Implementations are not required to be safe for concurrent use; all
// painting happens on one goroutine.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRand draws from the process-wide generator. It needs no seeding.
var DefaultRand Rand = globalRand{}

// NewSeededRand returns a deterministic source, used by tests and --seed.
func NewSeededRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// between returns a uniform value in [lo, hi).
func between(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// intBetween returns a uniform integer in [lo, hi).
func intBetween(r Rand, lo, hi int) int {
	n := lo + int(r.Float64()*float64(hi-lo))
	if n >= hi {
		n = hi - 1
	}
	return n
}

// chance reports true with probability p.
func chance(r Rand, p float64) bool {
	return r.Float64() > 1-p
}
