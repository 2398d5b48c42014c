// Package summary aggregates the derived wellbeing delta by treatment
// group and gender into the 10-cell table behind the chart.
package summary

import (
	"math"
	"sort"

	"github.com/KaramelBytes/cashviz/internal/dataset"
	"github.com/KaramelBytes/cashviz/internal/stats"
)

// Treatment group and gender labels, in definition order. Definition
// order is the tie-break for display ordering.
const (
	GroupSpillover = "Spillover Control"
	GroupSmall     = "Small Transfer"
	GroupLumpSum   = "Lump Sum"
	GroupMonthly   = "Monthly"
	GroupLarge     = "Large Transfer"

	GenderFemale = "Female"
	GenderMale   = "Male"
)

// Groups lists the five mutually exclusive treatment conditions. The
// aggregator trusts the study's encoding and does not enforce
// exclusivity; see the inspect report for informational cross-counts.
var Groups = []string{GroupSpillover, GroupSmall, GroupLumpSum, GroupMonthly, GroupLarge}

// Genders lists the two respondent gender indicators used here.
var Genders = []string{GenderFemale, GenderMale}

// Cell is one (treatment group, gender) aggregate. Delta is the mean
// of delta_psy_index over matching rows, rounded to 4 decimals, NaN
// when no rows match. The display strings are what the tooltips and
// exports show verbatim.
type Cell struct {
	Group          string
	Gender         string
	Delta          float64
	N              int
	DeltaDisplay   string
	PercentileGain string
}

// Table is the full 10-cell aggregate plus the derived display order.
type Table struct {
	Cells []Cell
	// GroupOrder sorts Groups ascending by the Female-subgroup delta
	// (NaN last, ties in definition order) and is applied to both
	// genders so paired bars stay aligned.
	GroupOrder []string
}

type predicate func(i int) bool

// Aggregate computes the group-by-gender means over the derived frame.
// The frame must already carry the delta column.
func Aggregate(fr *dataset.Frame) *Table {
	delta := fr.Delta()

	treat := fr.Floats(dataset.ColTreat)
	pure := fr.Floats(dataset.ColPureControl)
	small := fr.Floats(dataset.ColTreatSmall)
	lump := fr.Floats(dataset.ColTreatLump)
	monthly := fr.Floats(dataset.ColTreatMonthly)
	large := fr.Floats(dataset.ColTreatLarge)
	female := fr.Floats(dataset.ColFemale)
	male := fr.Floats(dataset.ColMale)

	groupPreds := map[string]predicate{
		GroupSpillover: func(i int) bool { return flagEq(treat[i], 0) && flagEq(pure[i], 0) },
		GroupSmall:     func(i int) bool { return flagEq(small[i], 1) },
		GroupLumpSum:   func(i int) bool { return flagEq(lump[i], 1) },
		GroupMonthly:   func(i int) bool { return flagEq(monthly[i], 1) },
		GroupLarge:     func(i int) bool { return flagEq(large[i], 1) },
	}
	genderPreds := map[string]predicate{
		GenderFemale: func(i int) bool { return flagEq(female[i], 1) },
		GenderMale:   func(i int) bool { return flagEq(male[i], 1) },
	}

	t := &Table{}
	for _, group := range Groups {
		for _, gender := range Genders {
			gp, sp := groupPreds[group], genderPreds[gender]
			matched := make([]float64, 0, len(delta))
			for i := range delta {
				if gp(i) && sp(i) {
					matched = append(matched, delta[i])
				}
			}
			mean := stats.Round(stats.Mean(matched), 4)
			t.Cells = append(t.Cells, Cell{
				Group:          group,
				Gender:         gender,
				Delta:          mean,
				N:              countValid(matched),
				DeltaDisplay:   stats.FormatDelta(mean),
				PercentileGain: stats.FormatGain(stats.PercentileGain(mean)),
			})
		}
	}
	t.GroupOrder = t.orderByFemaleDelta()
	return t
}

// Cell returns the aggregate for the given group and gender.
func (t *Table) Cell(group, gender string) (Cell, bool) {
	for _, c := range t.Cells {
		if c.Group == group && c.Gender == gender {
			return c, true
		}
	}
	return Cell{}, false
}

// Ordered returns one gender's cells in display order.
func (t *Table) Ordered(gender string) []Cell {
	out := make([]Cell, 0, len(t.GroupOrder))
	for _, group := range t.GroupOrder {
		if c, ok := t.Cell(group, gender); ok {
			out = append(out, c)
		}
	}
	return out
}

func (t *Table) orderByFemaleDelta() []string {
	order := make([]string, len(Groups))
	copy(order, Groups)
	sort.SliceStable(order, func(i, j int) bool {
		a, _ := t.Cell(order[i], GenderFemale)
		b, _ := t.Cell(order[j], GenderFemale)
		// NaN sorts last, ties keep definition order.
		switch {
		case math.IsNaN(a.Delta):
			return false
		case math.IsNaN(b.Delta):
			return true
		default:
			return a.Delta < b.Delta
		}
	})
	return order
}

func flagEq(x, v float64) bool {
	return !math.IsNaN(x) && x == v
}

func countValid(xs []float64) int {
	n := 0
	for _, x := range xs {
		if !math.IsNaN(x) {
			n++
		}
	}
	return n
}
