// Package chart renders the group summary as a horizontal grouped bar
// chart, in a static PNG and an interactive HTML flavor.
package chart

import (
	"github.com/KaramelBytes/cashviz/internal/summary"
)

// Shared styling and copy. The interactive flavor carries the full
// two-part title plus narrative line; the static renderer only supports
// a plain single-line title.
const (
	DefaultFemaleColor = "#D4AF37"
	DefaultMaleColor   = "#2E5E4E"
	gridColor          = "#E0E0E0"
	refLineColor       = "#8C8C8C"

	staticTitle = "Cash That Heals: Mental wellbeing by gender and transfer type"

	interactiveTitle    = "Cash That Heals"
	interactiveTagline  = "How unconditional cash shaped mental health, by gender and treatment group"
	interactiveNarrator = "Across all transfer types, women experienced meaningful psychological gains. " +
		"Gender was not explicitly targeted in the study, however, and men's gains were larger."

	xAxisTitle = "Change in Psychological Wellbeing Index (Δ z-score)"
	yAxisTitle = "Treatment Group"

	footnoteText = "Note: A z-score change of 0.25 corresponds to a shift from the 50th to roughly the " +
		"60th percentile in psychological wellbeing."
	sourceURL      = "https://doi.org/10.7910/DVN/M2GAZN"
	sourceCitation = "Source: Haushofer & Shapiro (2017), Harvard Dataverse, " + sourceURL
)

// Pixel dimensions shared by both artifacts; the PNG is written at 2x.
const (
	widthPx  = 1200
	heightPx = 525
)

// Input bundles everything the renderers need: the aggregate table,
// the global mean delta for the reference line, and the gender colors.
type Input struct {
	Table       *summary.Table
	AvgDelta    float64
	FemaleColor string
	MaleColor   string
}

func (in Input) femaleColor() string {
	if in.FemaleColor != "" {
		return in.FemaleColor
	}
	return DefaultFemaleColor
}

func (in Input) maleColor() string {
	if in.MaleColor != "" {
		return in.MaleColor
	}
	return DefaultMaleColor
}

// displayGroups returns the group labels top-to-bottom: ascending by
// Female delta, first group at the top of the chart. Both renderers
// draw categories bottom-up, so the order is reversed here once.
func (in Input) displayGroups() []string {
	n := len(in.Table.GroupOrder)
	out := make([]string, n)
	for i, g := range in.Table.GroupOrder {
		out[n-1-i] = g
	}
	return out
}

// seriesCells returns one gender's cells matching displayGroups order.
func (in Input) seriesCells(gender string) []summary.Cell {
	cells := make([]summary.Cell, 0, len(in.Table.GroupOrder))
	for _, group := range in.displayGroups() {
		if c, ok := in.Table.Cell(group, gender); ok {
			cells = append(cells, c)
		}
	}
	return cells
}
