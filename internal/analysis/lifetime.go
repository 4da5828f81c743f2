package analysis

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrNoData = errors.New("analysis: no data")

// LifetimeSummary holds descriptive statistics of observed lifetimes.
// StdDev is the population standard deviation.
type LifetimeSummary struct {
	Count          int     `json:"count"`
	Mean           float64 `json:"mean"`
	Median         float64 `json:"median"`
	StdDev         float64 `json:"std_dev"`
	Min            int     `json:"min"`
	Max            int     `json:"max"`
	PopulationSize int     `json:"population_size"`
}

// MeanGenerations converts the mean lifetime from steps to generations.
func (s LifetimeSummary) MeanGenerations() float64 {
	if s.PopulationSize == 0 {
		return 0
	}
	return s.Mean / float64(s.PopulationSize)
}

// MeanMinutes converts the mean lifetime to minutes given the duration of
// one generation.
func (s LifetimeSummary) MeanMinutes(generationMinutes float64) float64 {
	return s.MeanGenerations() * generationMinutes
}

func SummarizeLifetimes(lifetimes []int, populationSize int) (LifetimeSummary, error) {
	if len(lifetimes) == 0 {
		return LifetimeSummary{PopulationSize: populationSize}, ErrNoData
	}

	x := sortedFloats(lifetimes)
	mean, std := stat.PopMeanStdDev(x, nil)

	return LifetimeSummary{
		Count:          len(x),
		Mean:           mean,
		Median:         stat.Quantile(0.5, stat.LinInterp, x, nil),
		StdDev:         std,
		Min:            int(x[0]),
		Max:            int(x[len(x)-1]),
		PopulationSize: populationSize,
	}, nil
}

type Bin struct {
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
	Count      float64 `json:"count"`
	Density    float64 `json:"density"`
	Cumulative float64 `json:"cumulative"`
}

// LifetimeHistogram splits [min, max+1) into bins equal-width intervals.
// Density integrates to one over the range; Cumulative is the fraction of
// observations at or below the bin's upper edge.
func LifetimeHistogram(lifetimes []int, bins int) ([]Bin, error) {
	if len(lifetimes) == 0 {
		return nil, ErrNoData
	}
	if bins < 1 {
		bins = 1
	}

	x := sortedFloats(lifetimes)
	dividers := floats.Span(make([]float64, bins+1), x[0], x[len(x)-1]+1)
	counts := stat.Histogram(make([]float64, bins), dividers, x, nil)

	n := float64(len(x))
	out := make([]Bin, len(counts))
	running := 0.0
	for i, c := range counts {
		width := dividers[i+1] - dividers[i]
		running += c
		out[i] = Bin{
			Lower:      dividers[i],
			Upper:      dividers[i+1],
			Count:      c,
			Density:    c / (n * width),
			Cumulative: running / n,
		}
	}
	return out, nil
}

// BinCounts extracts the counts of a histogram, for plotting.
func BinCounts(bins []Bin) []float64 {
	out := make([]float64, len(bins))
	for i, b := range bins {
		out[i] = b.Count
	}
	return out
}

// LogBinCounts is BinCounts on a log10 scale. Empty bins map to 0, the same
// as a bin holding one observation.
func LogBinCounts(bins []Bin) []float64 {
	out := make([]float64, len(bins))
	for i, b := range bins {
		if b.Count > 0 {
			out[i] = math.Log10(b.Count)
		}
	}
	return out
}

func sortedFloats(v []int) []float64 {
	x := make([]float64, len(v))
	for i, lt := range v {
		x[i] = float64(lt)
	}
	sort.Float64s(x)
	return x
}
