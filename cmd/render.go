package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cashviz/internal/chart"
	cfgpkg "github.com/KaramelBytes/cashviz/internal/config"
	"github.com/KaramelBytes/cashviz/internal/dataset"
	"github.com/KaramelBytes/cashviz/internal/export"
	aggr "github.com/KaramelBytes/cashviz/internal/summary"
)

func cfgPNGOut() string {
	if cfg != nil {
		return cfg.PNGOut
	}
	return ""
}

func cfgHTMLOut() string {
	if cfg != nil {
		return cfg.HTMLOut
	}
	return ""
}

func cfgXLSXOut() string {
	if cfg != nil {
		return cfg.XLSXOut
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

var (
	renPNG      string
	renHTML     string
	renXLSX     string
	renManifest bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Run the full pipeline and write the chart artifacts",
	Long: `Loads the survey extract, derives the wellbeing delta, aggregates it by
treatment group and gender, and writes the static PNG and interactive HTML
charts. Existing output files are overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := datasetPath()
		fr, err := dataset.Load(path)
		if err != nil {
			return err
		}
		avgDelta := fr.Derive()
		table := aggr.Aggregate(fr)
		if debug {
			fmt.Printf("rows=%d avg_delta=%v group_order=%v\n", fr.Rows(), avgDelta, table.GroupOrder)
		}

		in := chart.Input{Table: table, AvgDelta: avgDelta}
		if cfg != nil {
			in.FemaleColor = cfg.FemaleColor
			in.MaleColor = cfg.MaleColor
		}

		pngPath := firstNonEmpty(renPNG, cfgPNGOut(), cfgpkg.DefaultPNG)
		htmlPath := firstNonEmpty(renHTML, cfgHTMLOut(), cfgpkg.DefaultHTML)
		if err := chart.WriteStatic(in, pngPath); err != nil {
			return err
		}
		if err := chart.WriteInteractive(in, htmlPath); err != nil {
			return err
		}
		outputs := []string{pngPath, htmlPath}

		if xlsxPath := firstNonEmpty(renXLSX, cfgXLSXOut()); xlsxPath != "" {
			if err := export.WriteWorkbook(table, avgDelta, fr.Rows(), xlsxPath); err != nil {
				return err
			}
			outputs = append(outputs, xlsxPath)
		}

		if renManifest {
			m, err := export.NewManifest(path, fr.Rows(), avgDelta, outputs)
			if err != nil {
				return err
			}
			if err := m.Write(pngPath + ".run.json"); err != nil {
				return err
			}
		}

		for _, out := range outputs {
			fmt.Printf("✓ Wrote %s\n", out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renPNG, "png", "", "static chart output path (default cover.png)")
	renderCmd.Flags().StringVar(&renHTML, "html", "", "interactive chart output path (default GD_DataViz_Example.html)")
	renderCmd.Flags().StringVar(&renXLSX, "xlsx", "", "optional workbook output path")
	renderCmd.Flags().BoolVar(&renManifest, "manifest", false, "write a <png>.run.json provenance manifest")
}
