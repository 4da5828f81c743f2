package moran

import (
	"fmt"
	"math"
)

// Params is the full configuration of a run. Advantage is ignored by the
// neutral and lifetime variants.
type Params struct {
	FreqA      float64 `json:"freq_a" yaml:"freq_a"`
	Advantage  float64 `json:"advantage" yaml:"advantage"`
	Size       int     `json:"population_size" yaml:"population_size"`
	Iterations int     `json:"iterations" yaml:"iterations"`
}

func (p Params) Validate() error {
	if math.IsNaN(p.FreqA) || p.FreqA < 0 || p.FreqA > 1 {
		return fmt.Errorf("%w: freq_a must be in [0,1], got %v", ErrInvalidParameter, p.FreqA)
	}
	if p.Size <= 0 {
		return fmt.Errorf("%w: population_size must be positive, got %d", ErrInvalidParameter, p.Size)
	}
	if p.Iterations < 0 {
		return fmt.Errorf("%w: iterations must be non-negative, got %d", ErrInvalidParameter, p.Iterations)
	}
	if math.IsNaN(p.Advantage) || math.IsInf(p.Advantage, 0) || p.Advantage < 0 {
		return fmt.Errorf("%w: selective advantage must be a finite non-negative number, got %v", ErrInvalidParameter, p.Advantage)
	}
	return nil
}
