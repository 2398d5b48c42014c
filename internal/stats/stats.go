// Package stats holds the small numeric kernel behind the wellbeing
// summaries: NaN-aware means, decimal rounding, and the z-score to
// percentile-gain conversion used for display.
package stats

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Mean returns the arithmetic mean of xs ignoring NaN entries.
// It returns NaN when no valid values remain, mirroring how a
// column mean behaves on an all-missing slice.
func Mean(xs []float64) float64 {
	valid := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			valid = append(valid, x)
		}
	}
	if len(valid) == 0 {
		return math.NaN()
	}
	m, err := mstats.Mean(valid)
	if err != nil {
		return math.NaN()
	}
	return m
}

// Round rounds x to the given number of decimal places, half away
// from zero. NaN passes through.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) {
		return x
	}
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}

// PercentileGain converts a mean z-score shift into the implied change
// in population percentile rank, in percentage points, assuming the
// underlying index is standard normal: (Phi(z) - 0.5) * 100.
func PercentileGain(z float64) float64 {
	if math.IsNaN(z) {
		return math.NaN()
	}
	return (distuv.UnitNormal.CDF(z) - 0.5) * 100
}

// FormatDelta renders a mean delta with 4 decimal places, or "n/a"
// for a missing value (e.g. an empty subgroup).
func FormatDelta(delta float64) string {
	if math.IsNaN(delta) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", delta)
}

// FormatGain renders a percentile gain as a signed 1-decimal string
// with a "pp" (percentage points) suffix, e.g. "+7.9 pp".
func FormatGain(gain float64) string {
	if math.IsNaN(gain) {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f pp", Round(gain, 1))
}
