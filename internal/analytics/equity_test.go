package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradelens/internal/models"
)

func TestComputeEquityCurve(t *testing.T) {
	curve := ComputeEquityCurve(tradesWithPnL(100, -50, 30), 1000)

	require.Len(t, curve.Points, 3)
	assert.InDelta(t, 1100, curve.Points[0].Equity, 1e-9)
	assert.InDelta(t, 1050, curve.Points[1].Equity, 1e-9)
	assert.InDelta(t, 1080, curve.Points[2].Equity, 1e-9)

	// Final cumulative P&L equals the exact sum of included trades.
	assert.InDelta(t, 80, curve.Points[2].CumulativePnL, 1e-9)
	assert.InDelta(t, 1080, curve.FinalEquity, 1e-9)
	assert.InDelta(t, 1100, curve.Peak, 1e-9)
	assert.InDelta(t, 50, curve.MaxDrawdown, 1e-9)
	assert.InDelta(t, 50.0/1100.0*100, curve.MaxDrawdownPct, 1e-9)
}

func TestComputeEquityCurveDrawdownAgainstPeakInForce(t *testing.T) {
	// Two drawdowns from different peaks: the percentage must use the
	// peak in force when the deepest drawdown happened, not the global
	// peak reached later.
	curve := ComputeEquityCurve(tradesWithPnL(100, -60, 200, -50), 100)

	assert.InDelta(t, 60, curve.MaxDrawdown, 1e-9)
	assert.InDelta(t, 60.0/200.0*100, curve.MaxDrawdownPct, 1e-9)
	assert.InDelta(t, 340, curve.Peak, 1e-9)
}

func TestComputeEquityCurveSkipsMissingPnL(t *testing.T) {
	trades := tradesWithPnL(10, -5)
	trades = append(trades, models.Trade{
		ID:   "open",
		Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	})

	curve := ComputeEquityCurve(trades, 0)
	require.Len(t, curve.Points, 2)
	assert.InDelta(t, 5, curve.Points[1].CumulativePnL, 1e-9)
}

func TestComputeEquityCurveDoesNotMutateInput(t *testing.T) {
	trades := tradesWithPnL(1, 2, 3)
	// Scramble the order, then make sure the input keeps it.
	trades[0], trades[2] = trades[2], trades[0]
	first := trades[0].ID

	ComputeEquityCurve(trades, 0)
	assert.Equal(t, first, trades[0].ID)
}

func TestComputeEquityCurveEmpty(t *testing.T) {
	curve := ComputeEquityCurve(nil, 500)
	assert.Empty(t, curve.Points)
	assert.InDelta(t, 500, curve.FinalEquity, 1e-9)
	assert.Zero(t, curve.MaxDrawdown)
}
