// Package analytics turns an ordered batch of journaled trades into
// performance statistics, time series, streak and exit-quality
// analyses, and tag-combination rankings. Every computation is a pure
// function over the batch it receives: nothing here performs I/O, owns
// state, or mutates its input, so concurrent callers need no locking.
package analytics

import (
	"tradelens/internal/models"
)

// Stats holds the basic performance metrics for a trade set.
type Stats struct {
	Total        int          `json:"total"`
	Wins         int          `json:"wins"`
	Losses       int          `json:"losses"`
	Breakeven    int          `json:"breakeven"`
	WinRate      float64      `json:"win_rate"`
	TotalPnL     float64      `json:"total_pnl"`
	AvgPnL       float64      `json:"avg_pnl"`
	ProfitFactor models.Ratio `json:"profit_factor"`
	GrossProfit  float64      `json:"gross_profit"`
	GrossLoss    float64      `json:"gross_loss"`
	AvgWin       float64      `json:"avg_win"`
	AvgLoss      float64      `json:"avg_loss"`
	LargestWin   float64      `json:"largest_win"`
	LargestLoss  float64      `json:"largest_loss"`
	AvgRR        float64      `json:"avg_rr"`
}

// ComputeBasicStats calculates win/loss statistics over a trade set.
// Order of the input is irrelevant. Trades without a realized P&L are
// excluded from every count and sum; break-even trades count toward
// Total (the win-rate denominator) but not toward Wins. An empty input
// yields the zero value with no division attempted.
func ComputeBasicStats(trades []models.Trade) Stats {
	var s Stats

	var rrSum float64
	var rrCount int

	for i := range trades {
		t := &trades[i]
		if t.RR != nil {
			rrSum += *t.RR
			rrCount++
		}
		if t.PnL == nil {
			continue
		}
		pnl := *t.PnL
		s.Total++
		s.TotalPnL += pnl

		switch {
		case pnl > 0:
			s.Wins++
			s.GrossProfit += pnl
			if pnl > s.LargestWin {
				s.LargestWin = pnl
			}
		case pnl < 0:
			s.Losses++
			s.GrossLoss += -pnl
			if pnl < s.LargestLoss {
				s.LargestLoss = pnl
			}
		default:
			s.Breakeven++
		}
	}

	if s.Total > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Total) * 100
		s.AvgPnL = s.TotalPnL / float64(s.Total)
	}
	if s.Wins > 0 {
		s.AvgWin = s.GrossProfit / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = -s.GrossLoss / float64(s.Losses)
	}
	if rrCount > 0 {
		s.AvgRR = rrSum / float64(rrCount)
	}

	// Gross loss of zero means the ratio is undefined, both for the
	// all-winners case and for the no-data case.
	s.ProfitFactor = models.DivideRatio(s.GrossProfit, s.GrossLoss)

	return s
}
