package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/KaramelBytes/cashviz/internal/summary"
)

// WriteInteractive renders the self-contained HTML artifact. The page
// loads the echarts runtime from its public CDN and carries the full
// styled title, per-bar tooltips, the global-mean reference line, and
// the footnote/citation annotations.
func WriteInteractive(in Input, path string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Cash That Heals",
			Width:     fmt.Sprintf("%dpx", widthPx),
			Height:    fmt.Sprintf("%dpx", heightPx),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:         interactiveTitle,
			Subtitle:      interactiveTagline,
			Left:          "0",
			TitleStyle:    &opts.TextStyle{Color: in.maleColor(), FontSize: 20},
			SubtitleStyle: &opts.TextStyle{Color: "#444444", FontSize: 16, FontStyle: "italic"},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: opts.FuncOpts(tooltipFormatter(in.Table)),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:  opts.Bool(true),
			Right: "40",
			Top:   "70",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: xAxisTitle}),
		charts.WithYAxisOpts(opts.YAxis{Name: yAxisTitle}),
		charts.WithGridOpts(opts.Grid{Top: "110", Bottom: "60", Left: "130", Right: "110"}),
	)

	bar.SetXAxis(in.displayGroups()).
		AddSeries(summary.GenderFemale, barData(in.seriesCells(summary.GenderFemale)),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: in.femaleColor()}),
		).
		AddSeries(summary.GenderMale, barData(in.seriesCells(summary.GenderMale)),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: in.maleColor()}),
			charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
				Name:  fmt.Sprintf("Avg Δ = %v", in.AvgDelta),
				XAxis: in.AvgDelta,
			}),
			charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
				Symbol: []string{"none", "none"},
				LineStyle: &opts.LineStyle{
					Type:  "dashed",
					Color: refLineColor,
					Width: 1.5,
				},
				Label: &opts.Label{Show: opts.Bool(true), Formatter: "{b}"},
			}),
		)
	bar.XYReversal()

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	html := annotate(buf.String())
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// tooltipFormatter builds a JS formatter with an embedded lookup of the
// formatted display strings, keyed by "<gender>|<group>". Tooltips show
// the exact strings from the summary table, not re-rounded values.
func tooltipFormatter(t *summary.Table) string {
	lookup := make(map[string][2]string, len(t.Cells))
	for _, c := range t.Cells {
		lookup[c.Gender+"|"+c.Group] = [2]string{c.DeltaDisplay, c.PercentileGain}
	}
	blob, _ := json.Marshal(lookup)
	return fmt.Sprintf(`function (p) {
	var d = %s;
	var e = d[p.seriesName + '|' + p.name] || ['n/a', 'n/a'];
	return '<b>Group:</b> ' + p.name +
		'<br/><b>Gender:</b> ' + p.seriesName +
		'<br/><b>Δ z-score:</b> ' + e[0] +
		'<br/><b>Approx. Percentile Gain:</b> ' + e[1];
}`, blob)
}

// barData converts one gender's cells to series points; an empty
// subgroup becomes a null point (rendered as a gap).
func barData(cells []summary.Cell) []opts.BarData {
	data := make([]opts.BarData, len(cells))
	for i, c := range cells {
		if math.IsNaN(c.Delta) {
			data[i] = opts.BarData{Value: nil}
			continue
		}
		data[i] = opts.BarData{Value: c.Delta}
	}
	return data
}

// annotate injects the narrative lede above the chart and the
// percentile footnote plus source citation below it; echarts has no
// native annotation slot for any of them.
func annotate(html string) string {
	lede := fmt.Sprintf(`<div style="width:%dpx;margin:0 auto;font-size:15px;color:#444;">%s</div>`,
		widthPx, interactiveNarrator)
	out := strings.Replace(html, "<body>", "<body>\n"+lede, 1)

	footer := fmt.Sprintf(`<div style="width:%dpx;margin:0 auto;font-size:13px;color:#000;">
<p style="text-align:center;">%s</p>
<p style="text-align:right;"><b>Source:</b> Haushofer &amp; Shapiro (2017), <a href="%s" target="_blank">Harvard Dataverse</a></p>
</div>
</body>`, widthPx, footnoteText, sourceURL)
	return strings.Replace(out, "</body>", footer, 1)
}
