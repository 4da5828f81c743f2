package moran

// Replace applies the Moran replacement rule. When the birth and death
// genotypes differ the dead genotype loses one individual to the other;
// otherwise the counts are unchanged.
func Replace(c Composition, birth, death Genotype) Composition {
	if birth == death {
		return c
	}
	if death == A {
		return Composition{A: c.A - 1, B: c.B + 1}
	}
	return Composition{A: c.A + 1, B: c.B - 1}
}

// NeutralStep advances a neutral-drift population by one birth-death event.
func NeutralStep(rng Rand, c Composition) (Composition, error) {
	return step(rng, c, NeutralWeights(c))
}

// MutantStep is NeutralStep with the birth draw biased toward A by advantage.
// The death draw stays unweighted.
func MutantStep(rng Rand, c Composition, advantage float64) (Composition, error) {
	return step(rng, c, FitnessWeights(c, advantage))
}

func step(rng Rand, c Composition, birthWeights Weights) (Composition, error) {
	birth, err := Choose(rng, birthWeights)
	if err != nil {
		return c, err
	}
	death, err := Choose(rng, NeutralWeights(c))
	if err != nil {
		return c, err
	}
	return Replace(c, birth, death), nil
}
