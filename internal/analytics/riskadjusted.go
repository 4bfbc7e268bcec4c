package analytics

import (
	"math"
	"sort"
	"time"

	"tradelens/internal/models"
)

const (
	tradingDaysPerYear = 252
	annualRiskFree     = 0.02

	// Floor on the downside deviation used by Sortino. Damps the ratio
	// when all losing days are near-identical in size, which would
	// otherwise produce an unrealistically explosive value.
	downsideDeviationFloor = 0.05

	sortinoCap = 5.0
)

// DailyReturn is one calendar day's summed P&L normalized against the
// equity in force before that day.
type DailyReturn struct {
	Date   time.Time `json:"date"`
	PnL    float64   `json:"pnl"`
	Return float64   `json:"return"`
}

// RiskAdjusted holds the risk-adjusted return metrics for a trade set.
// Both ratios are zero when no baseline was supplied.
type RiskAdjusted struct {
	Sharpe       float64       `json:"sharpe"`
	Sortino      float64       `json:"sortino"`
	DailyReturns []DailyReturn `json:"daily_returns,omitempty"`
}

// ComputeRiskAdjusted buckets trades by calendar day, normalizes each
// day's P&L against the equity before that day, and derives annualized
// Sharpe and Sortino ratios. With an absent or non-positive
// initialBalance no daily returns are produced and both ratios degrade
// to zero. Sortino is floored/capped rather than ever reporting a
// degenerate infinite-looking value.
func ComputeRiskAdjusted(trades []models.Trade, initialBalance float64) RiskAdjusted {
	var ra RiskAdjusted
	if initialBalance <= 0 {
		return ra
	}

	days := bucketByDay(trades)
	if len(days) == 0 {
		return ra
	}

	equityBefore := initialBalance
	returns := make([]float64, 0, len(days))
	for _, day := range days {
		r := 0.0
		if equityBefore != 0 {
			r = day.PnL / equityBefore
		}
		returns = append(returns, r)
		ra.DailyReturns = append(ra.DailyReturns, DailyReturn{
			Date:   day.Date,
			PnL:    day.PnL,
			Return: r,
		})
		equityBefore += day.PnL
	}

	mean := meanOf(returns)
	std := stddevOf(returns)

	if std != 0 {
		ra.Sharpe = mean / std * math.Sqrt(tradingDaysPerYear)
	}

	var downside []float64
	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	downsideStd := stddevOf(downside)
	if downsideStd < downsideDeviationFloor {
		downsideStd = downsideDeviationFloor
	}

	dailyRiskFree := annualRiskFree / tradingDaysPerYear
	sortino := (mean - dailyRiskFree) / downsideStd * math.Sqrt(tradingDaysPerYear)
	if sortino > sortinoCap {
		sortino = sortinoCap
	}
	if len(downside) == 0 && sortino < 0 {
		sortino = 0
	}
	ra.Sortino = sortino

	return ra
}

type dayBucket struct {
	Date time.Time
	PnL  float64
}

// bucketByDay sums realized P&L per calendar day, returning the days in
// chronological order. Trades without a P&L are skipped.
func bucketByDay(trades []models.Trade) []dayBucket {
	sums := make(map[time.Time]float64)
	for i := range trades {
		t := &trades[i]
		if t.PnL == nil {
			continue
		}
		day := time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), 0, 0, 0, 0, time.UTC)
		sums[day] += *t.PnL
	}

	days := make([]dayBucket, 0, len(sums))
	for day, pnl := range sums {
		days = append(days, dayBucket{Date: day, PnL: pnl})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddevOf returns the population standard deviation, zero for fewer
// than one value.
func stddevOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := meanOf(values)
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
