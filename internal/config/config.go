package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. It is loaded once in main
// and passed explicitly into the components that need it.
type Config struct {
	Data struct {
		Backend      string   `yaml:"backend"` // "csv" or "yahoo"
		CSVDir       string   `yaml:"csv_dir"`
		Symbols      []string `yaml:"symbols"`
		LookbackDays int      `yaml:"lookback_days"`
	} `yaml:"data"`
	Analysis struct {
		ShortWindow       int     `yaml:"short_window"`
		LongWindow        int     `yaml:"long_window"`
		RSIPeriod         int     `yaml:"rsi_period"`
		SidewaysThreshold float64 `yaml:"sideways_threshold"`
		HorizonDays       int     `yaml:"horizon_days"`
		Model             string  `yaml:"model"` // "linear" or "fallback"
	} `yaml:"analysis"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		Cron string `yaml:"cron"` // empty means run once and exit
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("INSIGHT_BACKEND"); v != "" {
		cfg.Data.Backend = v
	}
	if v := os.Getenv("INSIGHT_CSV_DIR"); v != "" {
		cfg.Data.CSVDir = v
	}
	if v := os.Getenv("INSIGHT_SYMBOLS"); v != "" {
		cfg.Data.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("INSIGHT_HORIZON"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.HorizonDays = n
		}
	}
	if v := os.Getenv("INSIGHT_MODEL"); v != "" {
		cfg.Analysis.Model = v
	}
	if v := os.Getenv("INSIGHT_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Data.Backend == "" {
		cfg.Data.Backend = "csv"
	}
	if cfg.Data.CSVDir == "" {
		cfg.Data.CSVDir = "data"
	}
	if cfg.Data.LookbackDays == 0 {
		cfg.Data.LookbackDays = 60
	}
	if cfg.Analysis.ShortWindow == 0 {
		cfg.Analysis.ShortWindow = 7
	}
	if cfg.Analysis.LongWindow == 0 {
		cfg.Analysis.LongWindow = 30
	}
	if cfg.Analysis.RSIPeriod == 0 {
		cfg.Analysis.RSIPeriod = 14
	}
	if cfg.Analysis.SidewaysThreshold == 0 {
		cfg.Analysis.SidewaysThreshold = 0.02
	}
	if cfg.Analysis.HorizonDays == 0 {
		cfg.Analysis.HorizonDays = 5
	}
	if cfg.Analysis.Model == "" {
		cfg.Analysis.Model = "linear"
	}

	return cfg, nil
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	if c.Data.Backend != "csv" && c.Data.Backend != "yahoo" {
		return fmt.Errorf("data.backend must be \"csv\" or \"yahoo\", got %q", c.Data.Backend)
	}
	if len(c.Data.Symbols) == 0 {
		return fmt.Errorf("data.symbols must list at least one symbol")
	}
	if c.Data.Backend == "csv" && c.Data.CSVDir == "" {
		return fmt.Errorf("data.csv_dir is required for the csv backend")
	}
	if c.Analysis.HorizonDays < 1 || c.Analysis.HorizonDays > 10 {
		return fmt.Errorf("analysis.horizon_days must be in [1,10], got %d", c.Analysis.HorizonDays)
	}
	if c.Analysis.Model != "linear" && c.Analysis.Model != "fallback" {
		return fmt.Errorf("analysis.model must be \"linear\" or \"fallback\", got %q", c.Analysis.Model)
	}
	if c.Analysis.ShortWindow >= c.Analysis.LongWindow {
		return fmt.Errorf("analysis.short_window (%d) must be below long_window (%d)",
			c.Analysis.ShortWindow, c.Analysis.LongWindow)
	}
	return nil
}

func splitSymbols(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
