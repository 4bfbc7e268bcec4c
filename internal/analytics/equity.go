package analytics

import (
	"sort"
	"time"

	"tradelens/internal/models"
)

// EquityPoint is one point on the cumulative equity curve.
type EquityPoint struct {
	Date          time.Time `json:"date"`
	Equity        float64   `json:"equity"`
	CumulativePnL float64   `json:"cumulative_pnl"`
}

// EquityCurve is the cumulative P&L series for a trade set together
// with its drawdown summary.
type EquityCurve struct {
	Points         []EquityPoint `json:"points"`
	InitialBalance float64       `json:"initial_balance"`
	FinalEquity    float64       `json:"final_equity"`
	Peak           float64       `json:"peak"`
	MaxDrawdown    float64       `json:"max_drawdown"`
	MaxDrawdownPct float64       `json:"max_drawdown_pct"`
}

// ComputeEquityCurve walks the trades in date order and emits one
// equity point per trade with a realized P&L. Equity starts at
// initialBalance (zero when the caller has none). The drawdown
// percentage is measured against the peak in force at the point the
// drawdown occurred, not the global peak. The input slice is not
// mutated; ordering happens on a copy.
func ComputeEquityCurve(trades []models.Trade, initialBalance float64) EquityCurve {
	curve := EquityCurve{
		InitialBalance: initialBalance,
		FinalEquity:    initialBalance,
		Peak:           initialBalance,
	}

	ordered := sortedByDate(trades)

	equity := initialBalance
	peak := initialBalance
	var cumulative float64

	for i := range ordered {
		t := &ordered[i]
		if t.PnL == nil {
			continue
		}
		equity += *t.PnL
		cumulative += *t.PnL

		if equity > peak {
			peak = equity
		}
		drawdown := peak - equity
		if drawdown > curve.MaxDrawdown {
			curve.MaxDrawdown = drawdown
			if peak > 0 {
				curve.MaxDrawdownPct = drawdown / peak * 100
			}
		}

		curve.Points = append(curve.Points, EquityPoint{
			Date:          t.Date,
			Equity:        equity,
			CumulativePnL: cumulative,
		})
	}

	curve.FinalEquity = equity
	curve.Peak = peak
	return curve
}

// sortedByDate returns a copy of trades ordered by Date ascending.
// Sorting is stable so trades sharing a timestamp keep their input
// order.
func sortedByDate(trades []models.Trade) []models.Trade {
	ordered := make([]models.Trade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})
	return ordered
}
