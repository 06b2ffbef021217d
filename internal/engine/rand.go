package engine

import (
	"math/rand/v2"
	"sync"
)

// Rand is the randomness the engine and builder draw from.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// NewRand returns the process-wide generator when seed is nil, otherwise a
// deterministic PCG stream that is safe for concurrent use.
func NewRand(seed *uint64) Rand {
	if seed == nil {
		return globalRand{}
	}
	return &lockedRand{r: rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))}
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
