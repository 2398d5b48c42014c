package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/cashviz/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set cashviz configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("dataset: %s\n", cfg.Dataset)
		fmt.Printf("png_out: %s\n", cfg.PNGOut)
		fmt.Printf("html_out: %s\n", cfg.HTMLOut)
		if cfg.XLSXOut != "" {
			fmt.Printf("xlsx_out: %s\n", cfg.XLSXOut)
		}
		if cfg.FemaleColor != "" {
			fmt.Printf("female_color: %s\n", cfg.FemaleColor)
		}
		if cfg.MaleColor != "" {
			fmt.Printf("male_color: %s\n", cfg.MaleColor)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "dataset":
			cfg.Dataset = val
		case "png_out":
			cfg.PNGOut = val
		case "html_out":
			cfg.HTMLOut = val
		case "xlsx_out":
			cfg.XLSXOut = val
		case "female_color":
			cfg.FemaleColor = val
		case "male_color":
			cfg.MaleColor = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
