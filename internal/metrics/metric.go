package metrics

import "github.com/san-kum/moran/internal/moran"

// Observation is what a metric sees for one recorded step. Counts is unset
// for the lifetime variant and Lifetime is unset for the counting variants.
type Observation struct {
	Step     int
	Counts   moran.Composition
	Lifetime int
}

type Metric interface {
	Name() string
	Observe(o Observation)
	Value() float64
	Reset()
}

// Finalizer is implemented by metrics that also account for the state left
// after the last step, which a counting trajectory does not contain.
type Finalizer interface {
	Finalize(step int, final moran.Composition)
}

// ObserveCounts feeds a counting trajectory through every metric.
func ObserveCounts(ms []Metric, counts []moran.Composition) {
	for i, c := range counts {
		o := Observation{Step: i, Counts: c}
		for _, m := range ms {
			m.Observe(o)
		}
	}
}

// Finalize hands the post-run composition to every metric that wants it.
// step is the number of steps taken.
func Finalize(ms []Metric, step int, final moran.Composition) {
	for _, m := range ms {
		if f, ok := m.(Finalizer); ok {
			f.Finalize(step, final)
		}
	}
}

// ObserveLifetimes feeds a lifetime trajectory through every metric.
func ObserveLifetimes(ms []Metric, lifetimes []int) {
	for i, lt := range lifetimes {
		o := Observation{Step: i, Lifetime: lt}
		for _, m := range ms {
			m.Observe(o)
		}
	}
}

// Collect reads the current value of every metric, keyed by name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
