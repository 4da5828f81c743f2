package experiment

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/moran/internal/analysis"
)

// SweepEntry is one point of a sweep. Iterations of zero keeps the base value.
type SweepEntry struct {
	Size       int
	Iterations int
}

// Sweep runs a variant once per entry, one after another.
type Sweep struct {
	registry *Registry
	entries  []SweepEntry
}

func NewSweep(reg *Registry, entries []SweepEntry) *Sweep {
	return &Sweep{registry: reg, entries: entries}
}

// Run executes every entry with a seed derived from base.Seed and the entry's
// population size. Cancellation is checked between entries.
func (s *Sweep) Run(ctx context.Context, base Config) ([]*Result, error) {
	results := make([]*Result, 0, len(s.entries))

	for _, entry := range s.entries {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		cfg := base
		cfg.Size = entry.Size
		if entry.Iterations > 0 {
			cfg.Iterations = entry.Iterations
		}
		cfg.Seed = DeriveSeed(base.Seed, fmt.Sprintf("size_%d", entry.Size))

		res, err := Execute(ctx, s.registry, cfg)
		if err != nil {
			return results, err
		}

		logrus.Infof("sweep %s N=%d: %d steps in %v", cfg.Variant, cfg.Size, res.Steps(), res.Elapsed)
		results = append(results, res)
	}

	return results, nil
}

// Comparison pairs a neutral run with a mutation run that consumed the same
// random stream.
type Comparison struct {
	Neutral      *Result
	Mutant       *Result
	NeutralTrend analysis.Trend
	MutantTrend  analysis.Trend
}

// Compare runs neutral drift and the mutation variant from the same seed so
// their draws line up.
func Compare(ctx context.Context, reg *Registry, cfg Config) (*Comparison, error) {
	neutralCfg := cfg
	neutralCfg.Variant = VariantNeutral
	mutantCfg := cfg
	mutantCfg.Variant = VariantMutation

	neutral, err := Execute(ctx, reg, neutralCfg)
	if err != nil {
		return nil, err
	}
	mutant, err := Execute(ctx, reg, mutantCfg)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{Neutral: neutral, Mutant: mutant}
	if cmp.NeutralTrend, err = analysis.FrequencyTrend(neutral.Counts); err != nil {
		return nil, err
	}
	if cmp.MutantTrend, err = analysis.FrequencyTrend(mutant.Counts); err != nil {
		return nil, err
	}
	return cmp, nil
}
