// Package profile produces a readiness report for a survey extract
// before it is rendered: per-column kinds and statistics, missingness,
// and cross-counts over the indicator flags the aggregator trusts.
// The report is informational only; it never blocks the pipeline.
package profile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KaramelBytes/cashviz/internal/dataset"
)

// Options controls profiling behavior.
type Options struct {
	// MaxRows limits rows processed; 0 means unlimited.
	MaxRows int
	// SampleRows determines how many example rows the report includes.
	SampleRows int
}

// DefaultOptions returns reasonable defaults for a survey extract.
func DefaultOptions() Options {
	return Options{MaxRows: 0, SampleRows: 5}
}

// ColumnSummary captures declared vs observed typing and basic stats
// for one analysis column.
type ColumnSummary struct {
	Name     string
	Declared string // loader coercion target: string|int|float
	Observed string // numeric|integer|text|empty
	NonNull  int
	Missing  int
	// Numeric stats (valid when Observed is numeric or integer)
	Min  float64
	Max  float64
	Mean float64
	Std  float64
}

// Report summarizes one survey file.
type Report struct {
	Name string
	Rows int
	Cols []ColumnSummary
	// Flag exclusivity cross-counts. The study design makes treatment
	// conditions mutually exclusive and every respondent exactly one
	// gender; rows violating that are counted, not rejected.
	MultiTreatment int
	NoGender       int
	BothGenders    int
	Samples        [][]string
	Warnings       []string
}

// Analyze streams a tab-delimited survey file and accumulates the
// report in one pass. Only the analysis columns are profiled; extra
// columns in the file are noted but skipped.
func Analyze(path string, opt Options) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.ReuseRecord = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Report{Name: filepath.Base(path)}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	type colAcc struct {
		name   string
		idx    int
		nonNil int
		miss   int
		// Welford accumulators over parsed numeric values
		n      int
		mean   float64
		m2     float64
		min    float64
		max    float64
		numCnt int
		intCnt int
		txtCnt int
	}
	var cols []*colAcc
	for _, name := range dataset.AnalysisColumns() {
		idx, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("dataset %s: missing required column %q", path, name)
		}
		cols = append(cols, &colAcc{name: name, idx: idx, min: math.Inf(1), max: math.Inf(-1)})
	}

	rep := &Report{Name: filepath.Base(path)}
	if extra := len(header) - len(cols); extra > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("%d additional columns not used by the pipeline", extra))
	}
	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	sampleRows := opt.SampleRows
	if sampleRows <= 0 {
		sampleRows = 5
	}

	field := func(rec []string, idx int) string {
		if idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}
	flagIs := func(rec []string, name string, want int) bool {
		v, err := strconv.Atoi(field(rec, index[name]))
		return err == nil && v == want
	}

	for rep.Rows < maxRows {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", rep.Rows+1, err)
		}
		rep.Rows++

		if len(rep.Samples) < sampleRows {
			row := make([]string, len(cols))
			for i, c := range cols {
				row[i] = field(rec, c.idx)
			}
			rep.Samples = append(rep.Samples, row)
		}

		for _, c := range cols {
			v := field(rec, c.idx)
			if v == "" {
				c.miss++
				continue
			}
			c.nonNil++
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.txtCnt++
				continue
			}
			c.numCnt++
			if _, err := strconv.Atoi(v); err == nil {
				c.intCnt++
			}
			c.n++
			if x < c.min {
				c.min = x
			}
			if x > c.max {
				c.max = x
			}
			delta := x - c.mean
			c.mean += delta / float64(c.n)
			c.m2 += delta * (x - c.mean)
		}

		// Treatment-condition cross-counts mirror the aggregator's
		// predicates exactly.
		matches := 0
		if flagIs(rec, dataset.ColTreat, 0) && flagIs(rec, dataset.ColPureControl, 0) {
			matches++
		}
		for _, name := range []string{
			dataset.ColTreatSmall, dataset.ColTreatLump,
			dataset.ColTreatMonthly, dataset.ColTreatLarge,
		} {
			if flagIs(rec, name, 1) {
				matches++
			}
		}
		if matches > 1 {
			rep.MultiTreatment++
		}
		female := flagIs(rec, dataset.ColFemale, 1)
		male := flagIs(rec, dataset.ColMale, 1)
		if female && male {
			rep.BothGenders++
		}
		if !female && !male {
			rep.NoGender++
		}
	}

	for _, c := range cols {
		s := ColumnSummary{
			Name:     c.name,
			Declared: dataset.DeclaredKind(c.name),
			NonNull:  c.nonNil,
			Missing:  c.miss,
		}
		switch {
		case c.nonNil == 0:
			s.Observed = "empty"
		case c.txtCnt > 0:
			s.Observed = "text"
		case c.intCnt == c.numCnt:
			s.Observed = "integer"
		default:
			s.Observed = "numeric"
		}
		if c.n > 0 && c.txtCnt == 0 {
			s.Min = c.min
			s.Max = c.max
			s.Mean = c.mean
			if c.n > 1 {
				s.Std = math.Sqrt(c.m2 / float64(c.n-1))
			}
		}
		rep.Cols = append(rep.Cols, s)
	}
	return rep, nil
}

// Text renders the report for terminal output.
func (r *Report) Text() string {
	var b strings.Builder
	b.WriteString("[DATASET]\n")
	fmt.Fprintf(&b, "File: %s\nRows: %d\nColumns: %d\n", r.Name, r.Rows, len(r.Cols))

	b.WriteString("\n[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		fmt.Fprintf(&b, "- %s: declared %s, observed %s (non-null %d, missing %.1f%%)",
			c.Name, c.Declared, c.Observed, c.NonNull, missPct)
		if c.Observed == "numeric" || c.Observed == "integer" {
			fmt.Fprintf(&b, " — min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n[FLAG EXCLUSIVITY]\n")
	fmt.Fprintf(&b, "- rows in more than one treatment condition: %d\n", r.MultiTreatment)
	fmt.Fprintf(&b, "- rows with both gender flags set: %d\n", r.BothGenders)
	fmt.Fprintf(&b, "- rows with neither gender flag set: %d\n", r.NoGender)

	if len(r.Samples) > 0 {
		b.WriteString("\n[SAMPLE ROWS]\n")
		names := make([]string, len(r.Cols))
		for i, c := range r.Cols {
			names[i] = c.Name
		}
		b.WriteString(strings.Join(names, "\t") + "\n")
		for _, row := range r.Samples {
			b.WriteString(strings.Join(row, "\t") + "\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- " + w + "\n")
		}
	}
	return b.String()
}
