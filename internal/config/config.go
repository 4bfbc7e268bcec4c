// Package config provides configuration management for the journal
// analytics application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	"tradelens/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Account   AccountConfig   `mapstructure:"account"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	UI        UIConfig        `mapstructure:"ui"`
}

// AccountConfig holds the account baseline the analytics run against.
type AccountConfig struct {
	// InitialBalance feeds equity-curve and risk-adjusted metrics.
	// Zero or negative means no baseline: those metrics degrade to
	// their defined zero sentinels instead of failing.
	InitialBalance float64 `mapstructure:"initial_balance"`
	Currency       string  `mapstructure:"currency"`
}

// DatabaseConfig holds persistence configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// AnalyticsConfig holds defaults for the analytics commands.
type AnalyticsConfig struct {
	CombinationLevel int `mapstructure:"combination_level"`
	MinTrades        int `mapstructure:"min_trades"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/tradelens"
	}
	return filepath.Join(home, ".config", "tradelens")
}

// Load loads configuration from the specified directory. If configDir
// is empty, the default config directory is used. A missing config
// file is not an error: defaults apply and a template is written.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
		if err := writeTemplate(configDir); err != nil {
			return nil, fmt.Errorf("writing config template: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("account.initial_balance", 0.0)
	v.SetDefault("account.currency", "USD")
	v.SetDefault("database.path", filepath.Join(configDir, "tradelens.db"))
	v.SetDefault("analytics.combination_level", 2)
	v.SetDefault("analytics.min_trades", 3)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "2006-01-02")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRADELENS_INITIAL_BALANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Account.InitialBalance = f
		}
	}
	if v := os.Getenv("TRADELENS_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("TRADELENS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

const configTemplate = `# tradelens configuration

[account]
# Account starting balance used for equity curves and risk-adjusted
# metrics. Leave at 0 if unknown; those metrics then report 0.
initial_balance = 0.0
currency = "USD"

[database]
# path = "~/.config/tradelens/tradelens.db"

[analytics]
combination_level = 2
min_trades = 3

[logging]
level = "info"
console = true
file = true

[ui]
color_enabled = true
date_format = "2006-01-02"
`

func writeTemplate(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}

// Validate validates the configuration. Failures wrap
// errors.ErrConfigInvalid so callers can match the category.
func (c *Config) Validate() error {
	if c.Analytics.CombinationLevel != 0 &&
		(c.Analytics.CombinationLevel < 2 || c.Analytics.CombinationLevel > 5) {
		return errors.Wrap(errors.ErrConfigInvalid, "analytics.combination_level must be between 2 and 5")
	}
	if c.Analytics.MinTrades < 1 {
		return errors.Wrap(errors.ErrConfigInvalid, "analytics.min_trades must be at least 1")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.Wrapf(errors.ErrConfigInvalid, "invalid logging.level: %s", c.Logging.Level)
	}
	return nil
}

// HasBaseline reports whether an account baseline is configured.
func (c *Config) HasBaseline() bool {
	return c.Account.InitialBalance > 0
}
