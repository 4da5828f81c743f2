package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/moran/internal/moran"
)

func TestFrequencyMetrics(t *testing.T) {
	counts := []moran.Composition{{A: 2, B: 2}, {A: 3, B: 1}, {A: 4, B: 0}, {A: 4, B: 0}}
	final := NewFinalFrequency()
	mean := NewMeanFrequency()
	het := NewHeterozygosity()

	ObserveCounts([]Metric{final, mean, het}, counts)

	if final.Value() != 1.0 {
		t.Errorf("expected final frequency 1, got %f", final.Value())
	}
	if want := (0.5 + 0.75 + 1 + 1) / 4; math.Abs(mean.Value()-want) > 1e-12 {
		t.Errorf("expected mean frequency %f, got %f", want, mean.Value())
	}
	if want := (0.5 + 0.375) / 4; math.Abs(het.Value()-want) > 1e-12 {
		t.Errorf("expected heterozygosity %f, got %f", want, het.Value())
	}
}

func TestFixationStep(t *testing.T) {
	counts := []moran.Composition{{A: 1, B: 2}, {A: 0, B: 3}, {A: 0, B: 3}}
	fix := NewFixationStep()
	which := NewFixedGenotype()
	ObserveCounts([]Metric{fix, which}, counts)

	if fix.Value() != 1 {
		t.Errorf("expected fixation at step 1, got %f", fix.Value())
	}
	if which.Value() != 0 {
		t.Errorf("expected B to fix, got %f", which.Value())
	}

	fix.Reset()
	if fix.Value() != -1 {
		t.Errorf("expected -1 after reset, got %f", fix.Value())
	}
}

func TestFixationStep_None(t *testing.T) {
	fix := NewFixedGenotype()
	ObserveCounts([]Metric{fix}, []moran.Composition{{A: 1, B: 1}, {A: 1, B: 1}})
	if fix.Value() != -1 {
		t.Errorf("expected -1 without fixation, got %f", fix.Value())
	}
}

func TestLifetimeMetrics(t *testing.T) {
	mean := NewMeanLifetime()
	longest := NewMaxLifetime()
	ms := []Metric{mean, longest}
	ObserveLifetimes(ms, []int{0, 1, 2, 1})

	values := Collect(ms)
	if values["mean_lifetime"] != 1.0 {
		t.Errorf("expected mean 1, got %f", values["mean_lifetime"])
	}
	if values["max_lifetime"] != 2 {
		t.Errorf("expected max 2, got %f", values["max_lifetime"])
	}

	mean.Reset()
	if mean.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestFinalize_FixationOnLastStep(t *testing.T) {
	// trajectory holds the pre-step states; the last step fixes B
	counts := []moran.Composition{{A: 1, B: 1}}
	final := NewFinalFrequency()
	fix := NewFixationStep()
	which := NewFixedGenotype()
	mean := NewMeanFrequency()
	ms := []Metric{final, fix, which, mean}

	ObserveCounts(ms, counts)
	Finalize(ms, len(counts), moran.Composition{A: 0, B: 2})

	if final.Value() != 0 {
		t.Errorf("expected final frequency 0, got %f", final.Value())
	}
	if fix.Value() != 1 {
		t.Errorf("expected fixation at step 1, got %f", fix.Value())
	}
	if which.Value() != 0 {
		t.Errorf("expected B to fix, got %f", which.Value())
	}
	if mean.Value() != 0.5 {
		t.Errorf("expected mean over the trajectory only, got %f", mean.Value())
	}
}

func TestFinalize_EmptyTrajectory(t *testing.T) {
	final := NewFinalFrequency()
	fix := NewFixationStep()
	ms := []Metric{final, fix}

	ObserveCounts(ms, nil)
	Finalize(ms, 0, moran.Composition{A: 1, B: 1})

	if final.Value() != 0.5 {
		t.Errorf("expected initial frequency 0.5, got %f", final.Value())
	}
	if fix.Value() != -1 {
		t.Errorf("expected no fixation, got %f", fix.Value())
	}
}

func TestFinalize_KeepsEarlierFixation(t *testing.T) {
	fix := NewFixationStep()
	ms := []Metric{fix}
	ObserveCounts(ms, []moran.Composition{{A: 1, B: 1}, {A: 2, B: 0}, {A: 2, B: 0}})
	Finalize(ms, 3, moran.Composition{A: 2})

	if fix.Value() != 1 {
		t.Errorf("expected first fixation at step 1, got %f", fix.Value())
	}
}
