package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/cashviz/internal/config"
)

var (
	// Global flags (wired to config/viper)
	cfgFile     string
	debug       bool
	flagDataset string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "cashviz",
	Short: "cashviz: wellbeing gains from the Kenya cash transfer study, charted",
	Long: `cashviz loads the Haushofer & Shapiro (2017) unconditional cash transfer
survey extract, computes the change in the psychological wellbeing index per
respondent, aggregates it by treatment group and gender, and renders an
annotated bar chart as a static PNG and an interactive HTML document.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.cashviz/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagDataset, "dataset", "", "path to the tab-delimited survey extract (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	if rootCmd.PersistentFlags().Changed("dataset") && flagDataset != "" {
		cfg.Dataset = flagDataset
	}
}

// datasetPath resolves the input file even when config loading failed.
func datasetPath() string {
	if flagDataset != "" {
		return flagDataset
	}
	if cfg != nil && cfg.Dataset != "" {
		return cfg.Dataset
	}
	return cfgpkg.DefaultDataset
}
