package analysis

import (
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/moran/internal/moran"
)

// FrequencySeries returns the frequency of A at each recorded step.
func FrequencySeries(counts []moran.Composition) []float64 {
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = c.FrequencyA()
	}
	return out
}

// CountSeries returns the count of genotype g at each recorded step.
func CountSeries(counts []moran.Composition, g moran.Genotype) []float64 {
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = float64(c.Count(g))
	}
	return out
}

// Trend is a straight-line fit of the frequency of A against the step index.
type Trend struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
	R2        float64 `json:"r2"`
}

// FrequencyTrend fits freq_a = Intercept + Slope*step by least squares.
// A constant series yields zero slope and zero R2.
func FrequencyTrend(counts []moran.Composition) (Trend, error) {
	if len(counts) < 2 {
		return Trend{}, ErrNoData
	}

	y := FrequencySeries(counts)
	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i)
	}

	if stat.Variance(y, nil) == 0 {
		return Trend{Intercept: y[0]}, nil
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return Trend{
		Intercept: alpha,
		Slope:     beta,
		R2:        stat.RSquared(x, y, nil, alpha, beta),
	}, nil
}

// Downsample keeps at most width evenly spaced points, always including the
// last one.
func Downsample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}

	out := make([]float64, width)
	last := len(values) - 1
	for i := 0; i < width; i++ {
		out[i] = values[i*last/(width-1)]
	}
	return out
}
