package moran

// CountResult is the outcome of a neutral or mutation run. Counts[i] is the
// composition observed at the start of step i; Final is the state after the
// last step.
type CountResult struct {
	Counts []Composition
	Final  Composition
}

// LifetimeResult is the outcome of a lifetime run. Lifetimes[i] is the age of
// the individual replaced at step i.
type LifetimeResult struct {
	Lifetimes []int
	Final     *Population
}

// RunNeutral simulates neutral drift and returns one composition per step.
func RunNeutral(rng Rand, freqA float64, size, iterations int) ([]Composition, error) {
	res, err := NeutralRun(rng, Params{FreqA: freqA, Size: size, Iterations: iterations})
	if err != nil {
		return nil, err
	}
	return res.Counts, nil
}

// RunLifetimes simulates a tracked population and returns the lifetime
// observed at each step.
func RunLifetimes(rng Rand, freqA float64, size, iterations int) ([]int, error) {
	res, err := LifetimeRun(rng, Params{FreqA: freqA, Size: size, Iterations: iterations})
	if err != nil {
		return nil, err
	}
	return res.Lifetimes, nil
}

// RunMutation simulates drift with a birth advantage for A and returns one
// composition per step.
func RunMutation(rng Rand, freqA, advantage float64, size, iterations int) ([]Composition, error) {
	res, err := MutationRun(rng, Params{FreqA: freqA, Advantage: advantage, Size: size, Iterations: iterations})
	if err != nil {
		return nil, err
	}
	return res.Counts, nil
}

func NeutralRun(rng Rand, p Params) (*CountResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return runCounts(p, func(c Composition) (Composition, error) {
		return NeutralStep(rng, c)
	})
}

func MutationRun(rng Rand, p Params) (*CountResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return runCounts(p, func(c Composition) (Composition, error) {
		return MutantStep(rng, c, p.Advantage)
	})
}

func runCounts(p Params, next func(Composition) (Composition, error)) (*CountResult, error) {
	c := InitialComposition(p.FreqA, p.Size)
	counts := make([]Composition, 0, p.Iterations)

	for i := 0; i < p.Iterations; i++ {
		counts = append(counts, c)
		var err error
		if c, err = next(c); err != nil {
			return nil, err
		}
	}

	return &CountResult{Counts: counts, Final: c}, nil
}

func LifetimeRun(rng Rand, p Params) (*LifetimeResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	pop := NewPopulation(p.FreqA, p.Size)
	lifetimes := make([]int, 0, p.Iterations)

	for i := 0; i < p.Iterations; i++ {
		lt, err := LifetimeStep(rng, pop, i)
		if err != nil {
			return nil, err
		}
		lifetimes = append(lifetimes, lt)
	}

	return &LifetimeResult{Lifetimes: lifetimes, Final: pop}, nil
}
