package moran

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestInitialComposition(t *testing.T) {
	tests := []struct {
		freq float64
		size int
		want Composition
	}{
		{0.5, 4, Composition{2, 2}},
		{1.0, 10, Composition{10, 0}},
		{0.0, 7, Composition{0, 7}},
		{0.01, 1000, Composition{10, 990}},
		{0.33, 10, Composition{3, 7}},
		{0.99, 3, Composition{2, 1}},
	}

	for _, tt := range tests {
		if got := InitialComposition(tt.freq, tt.size); got != tt.want {
			t.Errorf("InitialComposition(%v, %d) = %v, want %v", tt.freq, tt.size, got, tt.want)
		}
	}
}

func TestReplace(t *testing.T) {
	c := Composition{2, 2}
	tests := []struct {
		name         string
		birth, death Genotype
		want         Composition
	}{
		{"birth A death B", A, B, Composition{3, 1}},
		{"birth B death A", B, A, Composition{1, 3}},
		{"birth A death A", A, A, Composition{2, 2}},
		{"birth B death B", B, B, Composition{2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Replace(c, tt.birth, tt.death); got != tt.want {
				t.Errorf("Replace = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNeutralStep_Scripted(t *testing.T) {
	// pool (2,2): draws 0,1 map to A and 2,3 map to B
	tests := []struct {
		name  string
		draws []int64
		want  Composition
	}{
		{"birth A death B", []int64{0, 3}, Composition{3, 1}},
		{"birth A death A", []int64{1, 0}, Composition{2, 2}},
		{"birth B death A", []int64{2, 1}, Composition{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &scriptedRand{vals: tt.draws}
			got, err := NeutralStep(rng, Composition{2, 2})
			if err != nil {
				t.Fatalf("step failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if rng.n != 2 {
				t.Errorf("expected 2 draws, got %d", rng.n)
			}
		})
	}
}

func TestRunNeutral_RecordsBeforeUpdate(t *testing.T) {
	rng := &scriptedRand{vals: []int64{0, 3}}
	res, err := NeutralRun(rng, Params{FreqA: 0.5, Size: 4, Iterations: 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.Counts) != 1 || res.Counts[0] != (Composition{2, 2}) {
		t.Errorf("expected [(2,2)], got %v", res.Counts)
	}
	if res.Final != (Composition{3, 1}) {
		t.Errorf("expected final (3,1), got %v", res.Final)
	}
}

func TestFitnessWeights(t *testing.T) {
	tests := []struct {
		c         Composition
		advantage float64
		want      Weights
	}{
		{Composition{10, 990}, 0, Weights{10, 990}},
		{Composition{10, 990}, 10, Weights{110, 990}},
		{Composition{3, 7}, 0.1, Weights{3, 7}},
		{Composition{25, 475}, 0.1, Weights{27, 475}},
		{Composition{0, 5}, 3, Weights{0, 5}},
	}

	for _, tt := range tests {
		if got := FitnessWeights(tt.c, tt.advantage); got != tt.want {
			t.Errorf("FitnessWeights(%v, %v) = %+v, want %+v", tt.c, tt.advantage, got, tt.want)
		}
	}
}

func TestMutantStep_BirthWeighted(t *testing.T) {
	// (1,3) with advantage 2: birth weights A=3, B=3; death weights A=1, B=3
	rng := &scriptedRand{vals: []int64{2, 3}}
	got, err := MutantStep(rng, Composition{1, 3}, 2)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if got != (Composition{2, 2}) {
		t.Errorf("got %v, want (2,2)", got)
	}
}

func TestChoose_EmptyPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := Choose(rng, Weights{}); !errors.Is(err, ErrEmptyPool) {
		t.Errorf("expected ErrEmptyPool, got %v", err)
	}
	if _, err := Choose(rng, Weights{A: -1, B: 1}); !errors.Is(err, ErrEmptyPool) {
		t.Errorf("expected ErrEmptyPool for negative weight, got %v", err)
	}
}

func TestChoose_Proportions(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := Weights{A: 1, B: 3}
	hits := 0
	n := 40000
	for i := 0; i < n; i++ {
		g, err := Choose(rng, w)
		if err != nil {
			t.Fatal(err)
		}
		if g == A {
			hits++
		}
	}
	frac := float64(hits) / float64(n)
	if frac < 0.23 || frac > 0.27 {
		t.Errorf("expected A fraction near 0.25, got %.4f", frac)
	}
}

func TestRun_InvalidParams(t *testing.T) {
	tests := []struct {
		name string
		run  func() error
	}{
		{"freq above one", func() error { _, err := RunNeutral(rand.New(rand.NewSource(1)), 1.5, 10, 10); return err }},
		{"freq negative", func() error { _, err := RunLifetimes(rand.New(rand.NewSource(1)), -0.1, 10, 10); return err }},
		{"zero size", func() error { _, err := RunNeutral(rand.New(rand.NewSource(1)), 0.5, 0, 10); return err }},
		{"negative iterations", func() error { _, err := RunLifetimes(rand.New(rand.NewSource(1)), 0.5, 10, -1); return err }},
		{"negative advantage", func() error { _, err := RunMutation(rand.New(rand.NewSource(1)), 0.5, -0.2, 10, 10); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestRun_InvalidParamsConsumeNoDraws(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"freq above one", Params{FreqA: 2, Size: 10, Iterations: 5}},
		{"freq NaN", Params{FreqA: math.NaN(), Size: 10, Iterations: 5}},
		{"freq +Inf", Params{FreqA: math.Inf(1), Size: 10, Iterations: 5}},
		{"freq -Inf", Params{FreqA: math.Inf(-1), Size: 10, Iterations: 5}},
		{"advantage NaN", Params{FreqA: 0.5, Advantage: math.NaN(), Size: 10, Iterations: 5}},
		{"advantage +Inf", Params{FreqA: 0.5, Advantage: math.Inf(1), Size: 10, Iterations: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.p.Validate(); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Validate: expected ErrInvalidParameter, got %v", err)
			}

			rng := &scriptedRand{}
			if _, err := RunMutation(rng, tt.p.FreqA, tt.p.Advantage, tt.p.Size, tt.p.Iterations); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("RunMutation: expected ErrInvalidParameter, got %v", err)
			}
			if _, err := MutationRun(rng, tt.p); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("MutationRun: expected ErrInvalidParameter, got %v", err)
			}
			if rng.n != 0 {
				t.Errorf("expected no draws before validation, got %d", rng.n)
			}
		})
	}
}

func TestRun_ZeroIterations(t *testing.T) {
	counts, err := RunNeutral(rand.New(rand.NewSource(1)), 0.5, 10, 0)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("expected empty trajectory, got %d entries", len(counts))
	}
}
