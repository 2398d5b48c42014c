package dataset

import (
	"math"

	"github.com/go-gota/gota/series"

	"github.com/KaramelBytes/cashviz/internal/stats"
)

// Derive appends the delta_psy_index column (follow-up minus baseline,
// null-propagating) and returns the global mean delta over all rows
// with a non-missing value, rounded to 4 decimal places. The global
// mean is a true per-respondent average, not an average of subgroup
// means; it becomes the reference line on the chart.
func (fr *Frame) Derive() float64 {
	baseline := fr.Floats(ColIndexBaseline)
	followUp := fr.Floats(ColIndexFollowUp)

	delta := make([]float64, len(baseline))
	for i := range delta {
		if math.IsNaN(baseline[i]) || math.IsNaN(followUp[i]) {
			delta[i] = math.NaN()
			continue
		}
		delta[i] = followUp[i] - baseline[i]
	}

	fr.df = fr.df.Mutate(series.New(delta, series.Float, ColDelta))
	return stats.Round(stats.Mean(delta), 4)
}

// Delta returns the derived delta column. Callers must run Derive first.
func (fr *Frame) Delta() []float64 {
	return fr.Floats(ColDelta)
}
