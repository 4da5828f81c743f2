package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/moran/internal/metrics"
	"github.com/san-kum/moran/internal/moran"
)

type Config struct {
	Variant    string
	FreqA      float64
	Advantage  float64
	Size       int
	Iterations int
	Seed       int64
}

func (c Config) Params() moran.Params {
	return moran.Params{
		FreqA:      c.FreqA,
		Advantage:  c.Advantage,
		Size:       c.Size,
		Iterations: c.Iterations,
	}
}

// Result is the outcome of one run. Counts is filled by the counting
// variants, Lifetimes by the lifetime variant.
type Result struct {
	Variant   string
	Params    moran.Params
	Seed      int64
	Counts    []moran.Composition
	Final     moran.Composition
	Lifetimes []int
	Metrics   map[string]float64
	Elapsed   time.Duration
}

// Steps is the number of recorded observations.
func (r *Result) Steps() int {
	if r.Lifetimes != nil {
		return len(r.Lifetimes)
	}
	return len(r.Counts)
}

type Experiment struct {
	cfg        Config
	runner     Runner
	metrics    []metrics.Metric
	randSource *rand.Rand
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		randSource: NewRand(cfg.Seed),
	}
}

func (e *Experiment) Setup(runner Runner, ms []metrics.Metric) error {
	if runner == nil {
		return fmt.Errorf("no runner for variant %q", e.cfg.Variant)
	}
	e.runner = runner
	e.metrics = ms
	return nil
}

// Run executes the configured variant. The context is only consulted before
// the run starts; a run in progress is never interrupted.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.runner == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := logrus.WithFields(logrus.Fields{
		"variant": e.cfg.Variant,
		"size":    e.cfg.Size,
		"iters":   e.cfg.Iterations,
		"seed":    e.cfg.Seed,
	})
	log.Debug("starting run")

	start := time.Now()
	result, err := e.runner(e.randSource, e.cfg.Params())
	if err != nil {
		return nil, fmt.Errorf("%s run: %w", e.cfg.Variant, err)
	}
	result.Variant = e.cfg.Variant
	result.Params = e.cfg.Params()
	result.Seed = e.cfg.Seed
	result.Elapsed = time.Since(start)

	for _, m := range e.metrics {
		m.Reset()
	}
	if result.Lifetimes != nil {
		metrics.ObserveLifetimes(e.metrics, result.Lifetimes)
	} else {
		metrics.ObserveCounts(e.metrics, result.Counts)
		metrics.Finalize(e.metrics, len(result.Counts), result.Final)
	}
	result.Metrics = metrics.Collect(e.metrics)

	log.WithField("elapsed", result.Elapsed).Debug("run complete")
	return result, nil
}

// Execute resolves the variant in the registry and runs it with its default
// metrics.
func Execute(ctx context.Context, reg *Registry, cfg Config) (*Result, error) {
	runner, err := reg.GetRunner(cfg.Variant)
	if err != nil {
		return nil, err
	}
	exp := New(cfg)
	if err := exp.Setup(runner, reg.DefaultMetrics(cfg.Variant)); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}
