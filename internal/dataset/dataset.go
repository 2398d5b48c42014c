// Package dataset loads the Haushofer & Shapiro (2017) UCT survey
// extract and derives the per-respondent wellbeing change metric.
package dataset

import (
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names referenced by the pipeline. The file carries many more;
// everything else is dropped at load time.
const (
	ColSurveyID       = "surveyid"
	ColFemale         = "femaleres"
	ColMale           = "maleres"
	ColVillage        = "village"
	ColTreat          = "treat"
	ColSpillover      = "spillover"
	ColPureControl    = "purecontrol"
	ColControlVillage = "control_village"
	ColTreatLump      = "treatXlump"
	ColTreatMonthly   = "treatXmonthly"
	ColTreatLarge     = "treatXlarge"
	ColTreatSmall     = "treatXsmall"
	ColIndexBaseline  = "psy_index_z0"
	ColIndexMissing   = "psy_index_z_miss0"
	ColIndexFollowUp  = "psy_index_z1"

	// ColDelta is added by Derive.
	ColDelta = "delta_psy_index"
)

// typeMap overrides gota's type inference: indicator columns are
// nullable ints, index scores are floats, ids stay strings.
var typeMap = map[string]series.Type{
	ColSurveyID:       series.String,
	ColFemale:         series.Int,
	ColMale:           series.Int,
	ColVillage:        series.Int,
	ColTreat:          series.Int,
	ColSpillover:      series.Int,
	ColPureControl:    series.Int,
	ColControlVillage: series.Int,
	ColTreatLump:      series.Int,
	ColTreatMonthly:   series.Int,
	ColTreatLarge:     series.Int,
	ColTreatSmall:     series.Int,
	ColIndexBaseline:  series.Float,
	ColIndexMissing:   series.Int,
	ColIndexFollowUp:  series.Float,
}

// analysisColumns is the load-time projection, in file order.
var analysisColumns = []string{
	ColSurveyID, ColFemale, ColMale, ColVillage,
	ColTreat, ColSpillover, ColPureControl, ColControlVillage,
	ColTreatLump, ColTreatMonthly, ColTreatLarge, ColTreatSmall,
	ColIndexBaseline, ColIndexMissing, ColIndexFollowUp,
}

// AnalysisColumns returns the load-time projection in file order.
func AnalysisColumns() []string {
	out := make([]string, len(analysisColumns))
	copy(out, analysisColumns)
	return out
}

// DeclaredKind reports the type the loader coerces a column to:
// "string", "int", or "float". Unknown columns return "".
func DeclaredKind(name string) string {
	t, ok := typeMap[name]
	if !ok {
		return ""
	}
	return string(t)
}

// Frame is the in-memory survey table threaded through the pipeline.
type Frame struct {
	df dataframe.DataFrame
}

// Load reads a tab-delimited survey file, narrows it to the analysis
// columns, and applies the explicit type map. Missing files and missing
// columns are fatal; there is no recovery path.
func Load(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.WithDelimiter('\t'),
		dataframe.HasHeader(true),
		dataframe.WithTypes(typeMap),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read dataset: %w", df.Err)
	}

	have := make(map[string]bool, len(df.Names()))
	for _, name := range df.Names() {
		have[name] = true
	}
	for _, name := range analysisColumns {
		if !have[name] {
			return nil, fmt.Errorf("dataset %s: missing required column %q", path, name)
		}
	}

	sel := df.Select(analysisColumns)
	if sel.Err != nil {
		return nil, fmt.Errorf("select analysis columns: %w", sel.Err)
	}
	return &Frame{df: sel}, nil
}

// Rows returns the number of respondent rows.
func (fr *Frame) Rows() int {
	return fr.df.Nrow()
}

// Floats returns the named column as a float slice with NaN marking
// missing values. Works for both the int flag columns and the float
// index columns.
func (fr *Frame) Floats(name string) []float64 {
	return fr.df.Col(name).Float()
}
