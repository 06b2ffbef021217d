package engine

// New wires the scorer and builder to one shared randomness source.
func New(rng Rand) (*ProbabilityEngine, *Builder) {
	if rng == nil {
		rng = NewRand(nil)
	}
	return NewProbabilityEngine(rng), NewBuilder(rng)
}
