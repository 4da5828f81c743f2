package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/moran/internal/metrics"
	"github.com/san-kum/moran/internal/moran"
)

const (
	VariantNeutral  = "neutral"
	VariantLifetime = "lifetime"
	VariantMutation = "mutation"
)

// Runner executes one variant against a random source.
type Runner func(rng moran.Rand, p moran.Params) (*Result, error)

type Registry struct {
	runners map[string]Runner
	metrics map[string]func() []metrics.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		runners: make(map[string]Runner),
		metrics: make(map[string]func() []metrics.Metric),
	}

	r.runners[VariantNeutral] = func(rng moran.Rand, p moran.Params) (*Result, error) {
		res, err := moran.NeutralRun(rng, p)
		if err != nil {
			return nil, err
		}
		return &Result{Counts: res.Counts, Final: res.Final}, nil
	}
	r.runners[VariantMutation] = func(rng moran.Rand, p moran.Params) (*Result, error) {
		res, err := moran.MutationRun(rng, p)
		if err != nil {
			return nil, err
		}
		return &Result{Counts: res.Counts, Final: res.Final}, nil
	}
	r.runners[VariantLifetime] = func(rng moran.Rand, p moran.Params) (*Result, error) {
		res, err := moran.LifetimeRun(rng, p)
		if err != nil {
			return nil, err
		}
		return &Result{Lifetimes: res.Lifetimes, Final: res.Final.Composition()}, nil
	}

	countMetrics := func() []metrics.Metric {
		return []metrics.Metric{
			metrics.NewFinalFrequency(),
			metrics.NewMeanFrequency(),
			metrics.NewHeterozygosity(),
			metrics.NewFixationStep(),
			metrics.NewFixedGenotype(),
		}
	}
	r.metrics[VariantNeutral] = countMetrics
	r.metrics[VariantMutation] = countMetrics
	r.metrics[VariantLifetime] = func() []metrics.Metric {
		return []metrics.Metric{
			metrics.NewMeanLifetime(),
			metrics.NewMaxLifetime(),
		}
	}

	return r
}

func (r *Registry) GetRunner(name string) (Runner, error) {
	fn, ok := r.runners[name]
	if !ok {
		return nil, fmt.Errorf("unknown variant: %s (available: %v)", name, r.ListVariants())
	}
	return fn, nil
}

func (r *Registry) ListVariants() []string {
	names := make([]string, 0, len(r.runners))
	for name := range r.runners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns fresh metric instances for the variant.
func (r *Registry) DefaultMetrics(variant string) []metrics.Metric {
	fn, ok := r.metrics[variant]
	if !ok {
		return nil
	}
	return fn()
}
