package moran

import "math"

// Rand is the random source consumed by every draw. *math/rand.Rand satisfies it.
type Rand interface {
	Int63n(n int64) int64
}

// Weights is an unnormalised categorical distribution over the two genotypes.
type Weights struct {
	A int64
	B int64
}

func (w Weights) Total() int64 { return w.A + w.B }

// NeutralWeights weights each genotype by its current count.
func NeutralWeights(c Composition) Weights {
	return Weights{A: int64(c.A), B: int64(c.B)}
}

// FitnessWeights scales the birth weight of A by (1 + advantage) and truncates
// it toward zero. B keeps its count as weight.
func FitnessWeights(c Composition, advantage float64) Weights {
	return Weights{A: truncateWeight(float64(c.A) * (1 + advantage)), B: int64(c.B)}
}

func truncateWeight(w float64) int64 {
	w = math.Floor(w)
	if w >= math.MaxInt64/2 {
		return math.MaxInt64 / 2
	}
	return int64(w)
}

// Choose draws one genotype with probability proportional to its weight.
// A single value is consumed from rng per call.
func Choose(rng Rand, w Weights) (Genotype, error) {
	if w.A < 0 || w.B < 0 {
		return A, ErrEmptyPool
	}
	total := w.Total()
	if total <= 0 {
		return A, ErrEmptyPool
	}
	if rng.Int63n(total) < w.A {
		return A, nil
	}
	return B, nil
}
