package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDistribution(t *testing.T) {
	h := BuildDistribution(tradesWithPnL(-100, -50, 0, 25, 100))

	assert.Equal(t, 5, h.Count)
	assert.InDelta(t, -100, h.Min, 1e-9)
	assert.InDelta(t, 100, h.Max, 1e-9)
	assert.InDelta(t, -5, h.Mean, 1e-9)

	require.Len(t, h.Buckets, 20)
	var total int
	for _, b := range h.Buckets {
		total += b.Count
	}
	assert.Equal(t, h.Count, total, "bucket counts must sum to the value count")

	// Width is 10; -100 lands in bucket 0, +100 clamps into the last.
	assert.Equal(t, 1, h.Buckets[0].Count)
	assert.Equal(t, 1, h.Buckets[19].Count)
}

func TestBuildDistributionSingleValue(t *testing.T) {
	// min == max would give zero-width buckets; the width falls back
	// to 1 instead.
	h := BuildDistribution(tradesWithPnL(42, 42, 42))

	require.Len(t, h.Buckets, 20)
	assert.Equal(t, 3, h.Buckets[0].Count)
	assert.InDelta(t, 43, h.Buckets[0].High, 1e-9)
	assert.Zero(t, h.StdDev)
}

func TestBuildDistributionPercentilesNearestRank(t *testing.T) {
	// Ten ascending values: index floor(10*p) selects exactly, with no
	// interpolation.
	h := BuildDistribution(tradesWithPnL(10, 20, 30, 40, 50, 60, 70, 80, 90, 100))

	assert.InDelta(t, 20, h.Percentiles.P10, 1e-9) // index 1
	assert.InDelta(t, 30, h.Percentiles.P25, 1e-9) // index 2
	assert.InDelta(t, 60, h.Percentiles.P50, 1e-9) // index 5
	assert.InDelta(t, 80, h.Percentiles.P75, 1e-9) // index 7
	assert.InDelta(t, 100, h.Percentiles.P90, 1e-9)
}

func TestBuildDistributionSkipsMissingPnL(t *testing.T) {
	trades := tradesWithPnL(10, 20)
	trades[0].PnL = nil

	h := BuildDistribution(trades)
	assert.Equal(t, 1, h.Count)
}

func TestBuildDistributionEmpty(t *testing.T) {
	h := BuildDistribution(nil)
	assert.Zero(t, h.Count)
	assert.Empty(t, h.Buckets)
}
