package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"

	"github.com/KaramelBytes/cashviz/internal/summary"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// WriteStatic renders the 1200x525 raster artifact at 2x scale,
// overwriting path if it exists. The rich interactive title is not
// representable here, so the abbreviated plain-text title is used; the
// footnote and source citation are painted in a strip below the plot.
func WriteStatic(in Input, path string) error {
	p := plot.New()
	p.Title.Text = staticTitle
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xAxisTitle
	p.Y.Label.Text = yAxisTitle
	p.BackgroundColor = color.White

	groups := in.displayGroups()
	female := barValues(in.seriesCells(summary.GenderFemale))
	male := barValues(in.seriesCells(summary.GenderMale))

	barWidth := vg.Points(11)
	fb, err := plotter.NewBarChart(female, barWidth)
	if err != nil {
		return fmt.Errorf("female bars: %w", err)
	}
	mb, err := plotter.NewBarChart(male, barWidth)
	if err != nil {
		return fmt.Errorf("male bars: %w", err)
	}
	fb.Horizontal = true
	mb.Horizontal = true
	fb.Offset = barWidth / 2
	mb.Offset = -barWidth / 2
	fb.Color = hexColor(in.femaleColor())
	mb.Color = hexColor(in.maleColor())
	fb.LineStyle.Width = 0
	mb.LineStyle.Width = 0

	grid := plotter.NewGrid()
	grid.Vertical.Color = hexColor(gridColor)
	grid.Horizontal.Color = hexColor(gridColor)
	p.Add(grid, fb, mb)
	p.NominalY(groups...)
	p.Legend.Add(summary.GenderFemale, fb)
	p.Legend.Add(summary.GenderMale, mb)
	p.Legend.Top = true

	if err := addReferenceLine(p, in.AvgDelta, len(groups)); err != nil {
		return err
	}

	return writePNG(p, path)
}

// addReferenceLine draws the dashed global-mean line across the group
// axis with its annotation.
func addReferenceLine(p *plot.Plot, avg float64, groups int) error {
	if math.IsNaN(avg) {
		return nil
	}
	line, err := plotter.NewLine(plotter.XYs{
		{X: avg, Y: -0.5},
		{X: avg, Y: float64(groups) - 0.5},
	})
	if err != nil {
		return fmt.Errorf("reference line: %w", err)
	}
	line.LineStyle.Color = hexColor(refLineColor)
	line.LineStyle.Width = vg.Points(1)
	line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: avg, Y: float64(groups) - 0.45}},
		Labels: []string{fmt.Sprintf("Avg Δ = %v", avg)},
	})
	if err != nil {
		return fmt.Errorf("reference label: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = hexColor(refLineColor)
		labels.TextStyle[i].Font.Size = vg.Points(9)
	}

	p.Add(line, labels)
	return nil
}

func writePNG(p *plot.Plot, path string) error {
	// Logical size in points at 96 DPI; rendering at 192 DPI doubles
	// the pixel density (2400x1050 for a 1200x525 chart).
	w := vg.Length(widthPx) / 96 * vg.Inch
	h := vg.Length(heightPx) / 96 * vg.Inch
	img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(192))
	dc := draw.New(img)

	footer := vg.Points(30)
	p.Draw(draw.Crop(dc, 0, 0, footer, 0))
	drawFooter(dc, p.Title.TextStyle)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// drawFooter paints the percentile footnote and the source citation in
// the strip reserved below the plot area.
func drawFooter(dc draw.Canvas, base text.Style) {
	sty := base
	sty.Font.Size = vg.Points(9)
	sty.Color = color.Black
	sty.XAlign = text.XCenter
	sty.YAlign = text.YBottom
	mid := (dc.Min.X + dc.Max.X) / 2
	dc.FillText(sty, vg.Point{X: mid, Y: dc.Min.Y + vg.Points(16)}, footnoteText)

	cite := sty
	cite.Color = hexColor(refLineColor)
	cite.XAlign = text.XRight
	dc.FillText(cite, vg.Point{X: dc.Max.X - vg.Points(8), Y: dc.Min.Y + vg.Points(4)}, sourceCitation)
}

// barValues sanitizes cell deltas for plotting; an empty subgroup
// draws as a zero-length bar rather than breaking the range.
func barValues(cells []summary.Cell) plotter.Values {
	vals := make(plotter.Values, len(cells))
	for i, c := range cells {
		if math.IsNaN(c.Delta) {
			vals[i] = 0
			continue
		}
		vals[i] = c.Delta
	}
	return vals
}

func hexColor(s string) color.RGBA {
	if len(s) == 7 && s[0] == '#' {
		if v, err := strconv.ParseUint(s[1:], 16, 32); err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
		}
	}
	return color.RGBA{A: 255}
}
