package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cashviz/internal/dataset"
	"github.com/KaramelBytes/cashviz/internal/stats"
	aggr "github.com/KaramelBytes/cashviz/internal/summary"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the group-by-gender wellbeing summary without rendering",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fr, err := dataset.Load(datasetPath())
		if err != nil {
			return err
		}
		avgDelta := fr.Derive()
		t := aggr.Aggregate(fr)

		tbl := tablewriter.NewWriter(os.Stdout)
		tbl.SetHeader([]string{"Group", "Gender", "Mean Δ z-score", "Percentile Gain", "N"})
		for _, group := range t.GroupOrder {
			for _, gender := range aggr.Genders {
				c, ok := t.Cell(group, gender)
				if !ok {
					continue
				}
				tbl.Append([]string{c.Group, c.Gender, c.DeltaDisplay, c.PercentileGain, strconv.Itoa(c.N)})
			}
		}
		tbl.Render()

		fmt.Printf("Global mean Δ z-score: %s over %d respondents\n", stats.FormatDelta(avgDelta), fr.Rows())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
