package metrics

import "github.com/san-kum/moran/internal/moran"

// FixationStep records the first step at which one genotype held the whole
// population. Value is -1 when no fixation was observed.
type FixationStep struct {
	step     int
	genotype moran.Genotype
	fixed    bool
}

func NewFixationStep() *FixationStep { return &FixationStep{step: -1} }

func (f *FixationStep) Name() string { return "fixation_step" }

func (f *FixationStep) Observe(o Observation) {
	f.check(o.Step, o.Counts)
}

// Finalize catches a fixation caused by the last step.
func (f *FixationStep) Finalize(step int, final moran.Composition) {
	f.check(step, final)
}

func (f *FixationStep) check(step int, c moran.Composition) {
	if f.fixed {
		return
	}
	if g, ok := c.Fixed(); ok {
		f.step = step
		f.genotype = g
		f.fixed = true
	}
}

func (f *FixationStep) Value() float64 { return float64(f.step) }

// Winner returns the fixed genotype, if any.
func (f *FixationStep) Winner() (moran.Genotype, bool) { return f.genotype, f.fixed }

func (f *FixationStep) Reset() {
	f.step = -1
	f.fixed = false
}

// FixedGenotype reports which genotype fixed: 1 for A, 0 for B, -1 for none.
type FixedGenotype struct {
	FixationStep
}

func NewFixedGenotype() *FixedGenotype {
	return &FixedGenotype{FixationStep: FixationStep{step: -1}}
}

func (f *FixedGenotype) Name() string { return "fixed_genotype" }

func (f *FixedGenotype) Value() float64 {
	g, ok := f.Winner()
	switch {
	case !ok:
		return -1
	case g == moran.A:
		return 1
	}
	return 0
}
