package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Defaults reproduce the original analysis script: the dataset and both
// artifacts live in the working directory under fixed names.
const (
	DefaultDataset = "UCT_FINAL_CLEAN.tab"
	DefaultPNG     = "cover.png"
	DefaultHTML    = "GD_DataViz_Example.html"
)

// Global configuration structure.
type Global struct {
	Dataset     string `mapstructure:"dataset" yaml:"dataset"`
	PNGOut      string `mapstructure:"png_out" yaml:"png_out"`
	HTMLOut     string `mapstructure:"html_out" yaml:"html_out"`
	XLSXOut     string `mapstructure:"xlsx_out" yaml:"xlsx_out"`
	FemaleColor string `mapstructure:"female_color" yaml:"female_color"`
	MaleColor   string `mapstructure:"male_color" yaml:"male_color"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile
// is empty, it writes to ~/.cashviz/config.yaml, creating the
// directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".cashviz")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CASHVIZ")
	v.AutomaticEnv()

	v.SetDefault("dataset", DefaultDataset)
	v.SetDefault("png_out", DefaultPNG)
	v.SetDefault("html_out", DefaultHTML)
	v.SetDefault("xlsx_out", "")
	v.SetDefault("female_color", "")
	v.SetDefault("male_color", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".cashviz")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
