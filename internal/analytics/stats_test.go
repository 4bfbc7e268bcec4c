package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradelens/internal/models"
)

// tradesWithPnL builds one trade per value, one day apart, in order.
func tradesWithPnL(pnls ...float64) []models.Trade {
	base := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	trades := make([]models.Trade, 0, len(pnls))
	for i, pnl := range pnls {
		trades = append(trades, models.Trade{
			ID:        "t" + string(rune('a'+i)),
			Symbol:    "AAPL",
			Direction: models.DirectionLong,
			PnL:       models.Float64Ptr(pnl),
			Date:      base.AddDate(0, 0, i),
		})
	}
	return trades
}

func TestComputeBasicStats(t *testing.T) {
	s := ComputeBasicStats(tradesWithPnL(100, -50, 30, -20, -10))

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 3, s.Losses)
	assert.Equal(t, 0, s.Breakeven)
	assert.InDelta(t, 40.0, s.WinRate, 1e-9)
	assert.InDelta(t, 50.0, s.TotalPnL, 1e-9)
	assert.InDelta(t, 10.0, s.AvgPnL, 1e-9)

	pf, ok := s.ProfitFactor.Value()
	require.True(t, ok)
	assert.InDelta(t, 130.0/80.0, pf, 1e-9)

	assert.InDelta(t, 65.0, s.AvgWin, 1e-9)
	assert.InDelta(t, -80.0/3.0, s.AvgLoss, 1e-9)
	assert.InDelta(t, 100.0, s.LargestWin, 1e-9)
	assert.InDelta(t, -50.0, s.LargestLoss, 1e-9)
}

func TestComputeBasicStatsEmpty(t *testing.T) {
	s := ComputeBasicStats(nil)

	assert.Equal(t, 0, s.Total)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.TotalPnL)
	assert.False(t, s.ProfitFactor.Defined(), "no data means the ratio is undefined")
}

func TestComputeBasicStatsBreakeven(t *testing.T) {
	// Break-even counts in the denominator but never as a win.
	s := ComputeBasicStats(tradesWithPnL(100, 0, 0, -50))

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 2, s.Breakeven)
	assert.InDelta(t, 25.0, s.WinRate, 1e-9)
}

func TestComputeBasicStatsSkipsMissingPnL(t *testing.T) {
	trades := tradesWithPnL(100, -40)
	trades = append(trades, models.Trade{
		ID:     "open",
		Symbol: "AAPL",
		Date:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})

	s := ComputeBasicStats(trades)

	assert.Equal(t, 2, s.Total)
	assert.InDelta(t, 60.0, s.TotalPnL, 1e-9)
}

func TestComputeBasicStatsProfitFactorUndefined(t *testing.T) {
	// All winners: gross loss is zero, so the ratio is the sentinel
	// rather than an infinity.
	s := ComputeBasicStats(tradesWithPnL(10, 20, 5))

	assert.False(t, s.ProfitFactor.Defined())
	assert.InDelta(t, 35.0, s.GrossProfit, 1e-9)
	assert.Zero(t, s.GrossLoss)
}

func TestComputeBasicStatsAvgRR(t *testing.T) {
	trades := tradesWithPnL(40, -20)
	trades[0].RR = models.Float64Ptr(2.0)
	trades[1].RR = models.Float64Ptr(-1.0)

	s := ComputeBasicStats(trades)
	assert.InDelta(t, 0.5, s.AvgRR, 1e-9)
}
