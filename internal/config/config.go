// =============================================================================
// StatementGuard - Configuration Module
// =============================================================================
//
// Loads the main application configuration from a YAML file. Everything has
// a sensible default, and a missing config file simply means "all defaults",
// so the CLI works out of the box; an unreadable or unparseable file is
// still an error.
//
// CONFIGURATION FILE (config.yaml):
//   default_card_type:  REGULAR
//   default_from_date:  2025-10-16
//   default_until_date: 2025-11-15
//   batch_size:         5
//   progress_interval:  1000
//   report_dir:         ./reports
//   report_name_format: "{category}_{timestamp}_{uuid}"
//   report_max_age_days: 30
//   log_level:          info
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// MainConfig holds the global application configuration.
type MainConfig struct {
	// DefaultCardType is used when a run does not specify a card type.
	// Valid values: "REGULAR", "CORPORATE".
	DefaultCardType string `yaml:"default_card_type"`

	// DefaultFromDate / DefaultUntilDate (YYYY-MM-DD) pre-fill the
	// posting-date window for commands that do not pass their own bounds.
	// Both may be empty, which disables the filter by default.
	DefaultFromDate  string `yaml:"default_from_date"`
	DefaultUntilDate string `yaml:"default_until_date"`

	// BatchSize is the number of result rows buffered before a partial
	// batch is streamed. Default: 5.
	BatchSize int `yaml:"batch_size"`

	// ProgressInterval is the number of input lines between progress
	// events. Default: 1000.
	ProgressInterval int `yaml:"progress_interval"`

	// ReportDir is where the export command writes CSV/XLSX reports.
	// Default: "./reports".
	ReportDir string `yaml:"report_dir"`

	// ReportNameFormat names exported report files. Placeholders:
	//   {category}  - result category (per-category CSV exports)
	//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - a random UUID
	// The exporter appends the format's extension. Default:
	// "{category}_{timestamp}_{uuid}".
	ReportNameFormat string `yaml:"report_name_format"`

	// ReportMaxAgeDays removes reports older than this many days before a
	// new export is written. 0 (the default) keeps reports forever.
	ReportMaxAgeDays int `yaml:"report_max_age_days"`

	// LogLevel controls diagnostic verbosity on stderr.
	// Valid values: "debug", "info", "warn", "error". Default: "info".
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *MainConfig {
	cfg := &MainConfig{}
	applyDefaults(cfg)
	return cfg
}

// LoadMainConfig loads the configuration from a YAML file. A missing file
// yields the defaults; a present but broken file is an error.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg MainConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *MainConfig) {
	if cfg.DefaultCardType == "" {
		cfg.DefaultCardType = "REGULAR"
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 5
	}
	if cfg.ProgressInterval == 0 {
		cfg.ProgressInterval = 1000
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = "./reports"
	}
	if cfg.ReportNameFormat == "" {
		cfg.ReportNameFormat = "{category}_{timestamp}_{uuid}"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func validate(cfg *MainConfig) error {
	switch cfg.DefaultCardType {
	case "REGULAR", "CORPORATE":
	default:
		return fmt.Errorf("default_card_type must be REGULAR or CORPORATE, got %q", cfg.DefaultCardType)
	}

	for name, value := range map[string]string{
		"default_from_date":  cfg.DefaultFromDate,
		"default_until_date": cfg.DefaultUntilDate,
	} {
		if value == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return fmt.Errorf("%s must be YYYY-MM-DD, got %q", name, value)
		}
	}

	if cfg.BatchSize < 0 {
		return fmt.Errorf("batch_size must not be negative, got %d", cfg.BatchSize)
	}
	if cfg.ProgressInterval < 0 {
		return fmt.Errorf("progress_interval must not be negative, got %d", cfg.ProgressInterval)
	}
	if cfg.ReportMaxAgeDays < 0 {
		return fmt.Errorf("report_max_age_days must not be negative, got %d", cfg.ReportMaxAgeDays)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", cfg.LogLevel)
	}

	return nil
}
