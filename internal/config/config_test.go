package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradelens/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Zero(t, cfg.Account.InitialBalance)
	assert.False(t, cfg.HasBaseline())
	assert.Equal(t, filepath.Join(dir, "tradelens.db"), cfg.Database.Path)
	assert.Equal(t, 2, cfg.Analytics.CombinationLevel)
	assert.Equal(t, 3, cfg.Analytics.MinTrades)
	assert.Equal(t, "info", cfg.Logging.Level)

	// A template is written on first load
	_, err = os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, err)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	toml := `
[account]
initial_balance = 25000.0
currency = "EUR"

[analytics]
combination_level = 3
min_trades = 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.InDelta(t, 25000, cfg.Account.InitialBalance, 1e-9)
	assert.True(t, cfg.HasBaseline())
	assert.Equal(t, "EUR", cfg.Account.Currency)
	assert.Equal(t, 3, cfg.Analytics.CombinationLevel)
	assert.Equal(t, 5, cfg.Analytics.MinTrades)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TRADELENS_INITIAL_BALANCE", "50000")
	t.Setenv("TRADELENS_DB_PATH", "/tmp/override.db")
	t.Setenv("TRADELENS_LOG_LEVEL", "debug")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.InDelta(t, 50000, cfg.Account.InitialBalance, 1e-9)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Analytics: AnalyticsConfig{CombinationLevel: 2, MinTrades: 1},
		Logging:   LoggingConfig{Level: "info"},
	}
	assert.NoError(t, valid.Validate())

	badLevel := &Config{
		Analytics: AnalyticsConfig{CombinationLevel: 7, MinTrades: 1},
		Logging:   LoggingConfig{Level: "info"},
	}
	assert.ErrorIs(t, badLevel.Validate(), errors.ErrConfigInvalid)

	badLogging := &Config{
		Analytics: AnalyticsConfig{CombinationLevel: 2, MinTrades: 1},
		Logging:   LoggingConfig{Level: "verbose"},
	}
	assert.ErrorIs(t, badLogging.Validate(), errors.ErrConfigInvalid)

	badMinTrades := &Config{
		Analytics: AnalyticsConfig{CombinationLevel: 2},
		Logging:   LoggingConfig{Level: "info"},
	}
	assert.ErrorIs(t, badMinTrades.Validate(), errors.ErrConfigInvalid)
}
