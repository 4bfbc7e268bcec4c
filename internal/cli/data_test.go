package cli

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradelens/internal/errors"
	"tradelens/internal/models"
)

func filterCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	addFilterFlags(cmd)
	for name, value := range flags {
		require.NoError(t, cmd.Flags().Set(name, value))
	}
	return cmd
}

func TestFilterFromFlags(t *testing.T) {
	cmd := filterCmd(t, map[string]string{
		"symbol":    "nifty",
		"direction": "Short",
		"from":      "2025-01-01",
		"to":        "2025-06-30",
		"tag":       "setup:breakout",
		"limit":     "50",
	})

	filter, err := filterFromFlags(cmd)
	require.NoError(t, err)

	assert.Equal(t, "NIFTY", filter.Symbol)
	assert.Equal(t, models.DirectionShort, filter.Direction)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), filter.StartDate)
	assert.True(t, filter.EndDate.After(time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)),
		"end date is inclusive of the whole day")
	assert.Equal(t, "setup:breakout", filter.Tag)
	assert.Equal(t, 50, filter.Limit)
}

func TestFilterFromFlagsInvalidInput(t *testing.T) {
	_, err := filterFromFlags(filterCmd(t, map[string]string{"direction": "sideways"}))
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = filterFromFlags(filterCmd(t, map[string]string{"from": "01/02/2025"}))
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = filterFromFlags(filterCmd(t, map[string]string{"to": "yesterday"}))
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestTagSummary(t *testing.T) {
	assert.Empty(t, tagSummary(nil))
	assert.Equal(t, "emotion:calm setup:breakout|gap",
		tagSummary(models.TagMap{"setup": {"breakout", "gap"}, "emotion": {"calm"}}))
}
