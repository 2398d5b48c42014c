package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cashviz/internal/profile"
)

var (
	insSampleRows int
	insMaxRows    int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Profile the survey extract and report schema, missingness, and flag exclusivity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opt := profile.DefaultOptions()
		if insSampleRows > 0 {
			opt.SampleRows = insSampleRows
		}
		if insMaxRows > 0 {
			opt.MaxRows = insMaxRows
		}
		rep, err := profile.Analyze(datasetPath(), opt)
		if err != nil {
			return err
		}
		fmt.Print(rep.Text())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVar(&insSampleRows, "sample-rows", 5, "number of sample rows to include")
	inspectCmd.Flags().IntVar(&insMaxRows, "max-rows", 0, "maximum rows to process (0 = unlimited)")
}
