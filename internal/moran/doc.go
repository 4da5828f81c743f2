// Package moran implements the Moran birth-death process for a fixed-size
// population of two genotypes.
//
// Three transition rules share the same replacement skeleton:
//
//   - [NeutralStep]: birth and death drawn in proportion to counts
//   - [MutantStep]: birth weight of A scaled by (1 + advantage)
//   - [LifetimeStep]: per-individual tracking, yields the age at death
//
// Each step draws the birth genotype first and the death genotype second
// from an injected [Rand]. A run is fully determined by its parameters and
// the random stream, so seeding the source reproduces a trajectory exactly.
//
// # Example
//
//	rng := rand.New(rand.NewSource(42))
//	counts, err := moran.RunNeutral(rng, 0.5, 1000, 50000)
//
// # Thread Safety
//
// Nothing here is safe for concurrent use. A [Population] and its [Rand]
// belong to a single run.
package moran
