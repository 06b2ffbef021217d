package engine

import (
	"math"

	"ai-stock-scanner/internal/types"
)

type State int

const (
	Bullish State = iota
	Bearish
	Neutral
)

func (s State) String() string {
	switch s {
	case Bullish:
		return "BULLISH"
	case Bearish:
		return "BEARISH"
	case Neutral:
		return "NEUTRAL"
	}
	return "UNKNOWN"
}

const (
	// Steps is the fixed length of every walk.
	Steps = 100

	MinProbability = 20.0
	MaxProbability = 85.0

	strongBonus = 5.0
)

// transitions[from][to]; every row sums to 1.
var transitions = [3][3]float64{
	{0.6, 0.3, 0.1},
	{0.2, 0.5, 0.3},
	{0.3, 0.2, 0.5},
}

// probability sub-range [lo, lo+width) for each terminal state
var stateRanges = [3]struct{ lo, width float64 }{
	Bullish: {65, 20},
	Bearish: {20, 20},
	Neutral: {45, 10},
}

var strongSymbols = map[string]bool{
	"RELIANCE": true,
	"TCS":      true,
	"HDFCBANK": true,
}

// ProbabilityEngine scores symbols with a randomized three-state walk.
type ProbabilityEngine struct {
	rng Rand
}

func NewProbabilityEngine(rng Rand) *ProbabilityEngine {
	if rng == nil {
		rng = NewRand(nil)
	}
	return &ProbabilityEngine{rng: rng}
}

// Walk picks a uniform start state and applies Steps transitions.
func (e *ProbabilityEngine) Walk() State {
	state := State(e.rng.IntN(3))
	for i := 0; i < Steps; i++ {
		state = e.step(state)
	}
	return state
}

func (e *ProbabilityEngine) step(from State) State {
	draw := e.rng.Float64()
	cumulative := 0.0
	for to, p := range transitions[from] {
		cumulative += p
		if draw <= cumulative {
			return State(to)
		}
	}
	// float rounding can leave the row total a hair under the draw
	return from
}

// Score ignores quote and news; they are part of the call shape only.
func (e *ProbabilityEngine) Score(symbol string, _ types.PriceQuote, _ []types.NewsItem) float64 {
	r := stateRanges[e.Walk()]
	p := r.lo + e.rng.Float64()*r.width
	if strongSymbols[symbol] {
		p += strongBonus
	}
	return math.Min(math.Max(p, MinProbability), MaxProbability)
}

// IsStrong reports whether symbol receives the large-cap bonus.
func IsStrong(symbol string) bool {
	return strongSymbols[symbol]
}
