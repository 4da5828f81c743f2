package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns |X_k|^2 / n of the mean-removed series for
// k = 0..n/2. Index 0 is always zero.
func PowerSpectrum(series []float64) ([]float64, error) {
	n := len(series)
	if n < 2 {
		return nil, ErrNoData
	}

	x := make([]float64, n)
	copy(x, series)
	floats.AddConst(-stat.Mean(x, nil), x)

	spectrum := fft.FFTReal(x)
	power := make([]float64, n/2+1)
	for k := 1; k < len(power); k++ {
		mag := cmplx.Abs(spectrum[k])
		power[k] = mag * mag / float64(n)
	}
	return power, nil
}

// SpectralSlope fits log(power) against log(k) over the non-zero bins of a
// power spectrum. A random walk gives a slope near -2.
func SpectralSlope(power []float64) (Trend, error) {
	var x, y []float64
	for k := 1; k < len(power); k++ {
		if power[k] <= 0 {
			continue
		}
		x = append(x, math.Log(float64(k)))
		y = append(y, math.Log(power[k]))
	}
	if len(x) < 2 {
		return Trend{}, ErrNoData
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return Trend{
		Intercept: alpha,
		Slope:     beta,
		R2:        stat.RSquared(x, y, nil, alpha, beta),
	}, nil
}
