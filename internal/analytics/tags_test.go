package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradelens/internal/models"
)

func taggedTrades(pnls []float64, tags models.TagMap) []models.Trade {
	trades := tradesWithPnL(pnls...)
	for i := range trades {
		trades[i].Tags = tags.Clone()
	}
	return trades
}

func TestAggregateByTagMatchesBasicStats(t *testing.T) {
	// A synthetic tag shared by every trade must reproduce the basic
	// stats of the whole batch.
	pnls := []float64{100, -50, 30, -20, -10}
	trades := taggedTrades(pnls, models.TagMap{"setup": {"breakout"}})

	analysis := AggregateByTag(trades, TagOptions{})
	require.Len(t, analysis.Groups, 1)

	group := analysis.Groups[0]
	assert.Equal(t, "setup: breakout", group.Key)

	want := ComputeBasicStats(trades)
	assert.Equal(t, want, group.Stats)
	require.NotEmpty(t, group.Series)
	assert.InDelta(t, want.TotalPnL, group.Series[len(group.Series)-1].CumulativePnL, 1e-9)
}

func TestAggregateByTagMultiValueTags(t *testing.T) {
	trades := taggedTrades([]float64{10, -5}, models.TagMap{
		"emotion": {"calm", "impatient"},
		"setup":   {"pullback"},
	})

	analysis := AggregateByTag(trades, TagOptions{})
	keys := make([]string, 0, len(analysis.Groups))
	for _, g := range analysis.Groups {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"emotion: calm", "emotion: impatient", "setup: pullback"}, keys)
}

func TestAggregateByTagSelectionFilter(t *testing.T) {
	trades := taggedTrades([]float64{10}, models.TagMap{
		"setup":   {"breakout"},
		"emotion": {"calm"},
	})

	analysis := AggregateByTag(trades, TagOptions{Tags: []string{" SETUP "}})
	require.Len(t, analysis.Groups, 1)
	assert.Equal(t, "setup: breakout", analysis.Groups[0].Key)
}

func TestAggregateByTagInvalidSelectionFailsOpen(t *testing.T) {
	trades := taggedTrades([]float64{10}, models.TagMap{
		"setup":   {"breakout"},
		"emotion": {"calm"},
	})

	// A selection that normalizes to nothing behaves as no filter.
	analysis := AggregateByTag(trades, TagOptions{Tags: []string{"  ", ""}})
	assert.Len(t, analysis.Groups, 2)
}

func TestCombinationCountAtLevelTwo(t *testing.T) {
	// One trade with k=4 distinct tag:value pairs at level 2 touches
	// exactly C(4,2)=6 combination keys.
	trades := taggedTrades([]float64{25}, models.TagMap{
		"setup":   {"breakout"},
		"emotion": {"calm"},
		"session": {"open"},
		"side":    {"with-trend"},
	})

	analysis := AggregateByTag(trades, TagOptions{CombinationLevel: 2, MinTrades: 1})
	assert.Len(t, analysis.Combinations, 6)
	for _, g := range analysis.Combinations {
		assert.Equal(t, 1, g.Stats.Total)
		assert.Equal(t, 2, strings.Count(g.Key, ":"))
	}
}

func TestCombinationLevelClamped(t *testing.T) {
	trades := taggedTrades([]float64{25}, models.TagMap{
		"a": {"1"}, "b": {"2"}, "c": {"3"},
	})

	// Level 9 clamps to 5, bounded further by the three pairs carried:
	// C(3,2)+C(3,3) = 4 keys.
	analysis := AggregateByTag(trades, TagOptions{CombinationLevel: 9, MinTrades: 1})
	assert.Len(t, analysis.Combinations, 4)
}

func TestCombinationMinTradesFilter(t *testing.T) {
	shared := models.TagMap{"setup": {"breakout"}, "emotion": {"calm"}}
	trades := taggedTrades([]float64{10, 20}, shared)

	lone := tradesWithPnL(5)[0]
	lone.ID = "lone"
	lone.Tags = models.TagMap{"setup": {"reversal"}, "emotion": {"fomo"}}
	trades = append(trades, lone)

	analysis := AggregateByTag(trades, TagOptions{CombinationLevel: 2, MinTrades: 2})
	require.Len(t, analysis.Combinations, 1)
	assert.Equal(t, "emotion:calm + setup:breakout", analysis.Combinations[0].Key)
	assert.Equal(t, 2, analysis.Combinations[0].Stats.Total)
}

func TestCombinationRanking(t *testing.T) {
	base := time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)
	mk := func(id string, pnl float64, day int, tags models.TagMap) models.Trade {
		return models.Trade{
			ID:   id,
			PnL:  models.Float64Ptr(pnl),
			Date: base.AddDate(0, 0, day),
			Tags: tags,
		}
	}

	steady := models.TagMap{"setup": {"steady"}, "session": {"open"}}
	lucky := models.TagMap{"setup": {"lucky"}, "session": {"close"}}

	trades := []models.Trade{
		// steady: pf = 30/10 = 3
		mk("s1", 20, 0, steady),
		mk("s2", -10, 1, steady),
		mk("s3", 10, 2, steady),
		// lucky: no losses, pf undefined, ranks by gross profit (5)
		mk("l1", 2, 3, lucky),
		mk("l2", 3, 4, lucky),
	}

	analysis := AggregateByTag(trades, TagOptions{CombinationLevel: 2, MinTrades: 2})
	require.Len(t, analysis.Combinations, 2)

	// The undefined profit factor ranks as its raw gross profit value,
	// so the steady group (pf 3) loses to it: 5 > 3.
	assert.Contains(t, analysis.Combinations[0].Key, "lucky")
	assert.Contains(t, analysis.Combinations[1].Key, "steady")
}

func TestTagGroupExpectancyAndConsistency(t *testing.T) {
	trades := taggedTrades([]float64{100, 100, -50, -50}, models.TagMap{"setup": {"range"}})

	analysis := AggregateByTag(trades, TagOptions{})
	require.Len(t, analysis.Groups, 1)
	g := analysis.Groups[0]

	// 0.5*100 - 0.5*50 = 25; identical win and loss sizes give the
	// maximal consistency score of 1.
	assert.InDelta(t, 25.0, g.Expectancy, 1e-9)
	assert.InDelta(t, 1.0, g.ConsistencyScore, 1e-9)
	assert.Greater(t, g.ConsistencyScore, 0.0)
	assert.LessOrEqual(t, g.ConsistencyScore, 1.0)
}

func TestAggregateByTagPreservesDuplicateValues(t *testing.T) {
	// Duplicate values within a tag are not deduplicated: the trade
	// accumulates twice into the same group.
	trades := taggedTrades([]float64{10}, models.TagMap{"emotion": {"calm", "calm"}})

	analysis := AggregateByTag(trades, TagOptions{})
	require.Len(t, analysis.Groups, 1)
	assert.Equal(t, 2, analysis.Groups[0].Stats.Total)
}
