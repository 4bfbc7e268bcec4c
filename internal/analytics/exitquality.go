package analytics

import (
	"math"

	"tradelens/internal/models"
)

// ExitMetrics holds per-trade exit quality figures. MFE, MAE and the
// efficiencies are percentages; MFE/MAE are relative to the entry
// price.
type ExitMetrics struct {
	TradeID        string           `json:"trade_id"`
	Symbol         string           `json:"symbol"`
	Direction      models.Direction `json:"direction"`
	MFE            float64          `json:"mfe"`
	MAE            float64          `json:"mae"`
	ExitEfficiency float64          `json:"exit_efficiency"`
	PlannedRR      float64          `json:"planned_rr,omitempty"`
	ActualRR       float64          `json:"actual_rr,omitempty"`
	RREfficiency   float64          `json:"rr_efficiency,omitempty"`
	HasRR          bool             `json:"has_rr"`
}

// EfficiencyDistribution buckets exit efficiency for a distribution
// view.
type EfficiencyDistribution struct {
	Below50     int `json:"below_50"`
	From50To75  int `json:"from_50_to_75"`
	From75To100 int `json:"from_75_to_100"`
	Above100    int `json:"above_100"`
}

// ExitQualitySplit carries average excursion figures for one side of
// the winner/loser split.
type ExitQualitySplit struct {
	Trades        int     `json:"trades"`
	AvgMFE        float64 `json:"avg_mfe"`
	AvgMAE        float64 `json:"avg_mae"`
	AvgEfficiency float64 `json:"avg_efficiency"`
}

// ExitQualityReport aggregates exit quality across a trade set.
type ExitQualityReport struct {
	Trades        []ExitMetrics          `json:"trades"`
	AvgMFE        float64                `json:"avg_mfe"`
	AvgMAE        float64                `json:"avg_mae"`
	AvgEfficiency float64                `json:"avg_efficiency"`
	Winners       ExitQualitySplit       `json:"winners"`
	Losers        ExitQualitySplit       `json:"losers"`
	Efficiency    EfficiencyDistribution `json:"efficiency_distribution"`
}

// ComputeExitQuality derives MFE/MAE, exit efficiency and R-multiple
// efficiency for a single trade. The second return value is false when
// the trade is missing the intratrade extremes, carries no direction,
// or has a zero entry price; such trades are silently excluded from the
// batch aggregate. R-multiple figures are only populated when both stop
// loss and take profit are present and the stop distance is non-zero.
func ComputeExitQuality(t models.Trade) (ExitMetrics, bool) {
	if t.HighPrice == nil || t.LowPrice == nil || t.EntryPrice == 0 {
		return ExitMetrics{}, false
	}
	if t.Direction != models.DirectionLong && t.Direction != models.DirectionShort {
		return ExitMetrics{}, false
	}

	m := ExitMetrics{
		TradeID:   t.ID,
		Symbol:    t.Symbol,
		Direction: t.Direction,
	}

	entry := t.EntryPrice
	exit := t.ExitPrice
	high := *t.HighPrice
	low := *t.LowPrice

	if t.Direction == models.DirectionLong {
		m.MFE = (high - entry) / entry * 100
		m.MAE = (entry - low) / entry * 100
		if favorable := high - entry; favorable > 0 {
			m.ExitEfficiency = (exit - entry) / favorable * 100
		}
	} else {
		m.MFE = (entry - low) / entry * 100
		m.MAE = (high - entry) / entry * 100
		if favorable := entry - low; favorable > 0 {
			m.ExitEfficiency = (entry - exit) / favorable * 100
		}
	}

	if t.StopLoss != nil && t.TakeProfit != nil {
		risk := math.Abs(entry - *t.StopLoss)
		if risk > 0 {
			m.PlannedRR = math.Abs(*t.TakeProfit-entry) / risk
			m.ActualRR = math.Abs(exit-entry) / risk
			if m.PlannedRR > 0 {
				m.RREfficiency = m.ActualRR / m.PlannedRR * 100
			}
			m.HasRR = true
		}
	}

	return m, true
}

// ComputeExitQualityBatch aggregates exit quality over a trade set:
// averages overall and split by winners versus losers (break-even
// counts as a loser; trades without a realized P&L stay out of the
// split), plus an exit-efficiency distribution.
func ComputeExitQualityBatch(trades []models.Trade) ExitQualityReport {
	var report ExitQualityReport

	var sumMFE, sumMAE, sumEff float64
	var winMFE, winMAE, winEff float64
	var lossMFE, lossMAE, lossEff float64

	for i := range trades {
		t := &trades[i]
		m, ok := ComputeExitQuality(*t)
		if !ok {
			continue
		}
		report.Trades = append(report.Trades, m)

		sumMFE += m.MFE
		sumMAE += m.MAE
		sumEff += m.ExitEfficiency

		switch {
		case m.ExitEfficiency < 50:
			report.Efficiency.Below50++
		case m.ExitEfficiency < 75:
			report.Efficiency.From50To75++
		case m.ExitEfficiency <= 100:
			report.Efficiency.From75To100++
		default:
			report.Efficiency.Above100++
		}

		if t.PnL == nil {
			continue
		}
		if *t.PnL > 0 {
			report.Winners.Trades++
			winMFE += m.MFE
			winMAE += m.MAE
			winEff += m.ExitEfficiency
		} else {
			report.Losers.Trades++
			lossMFE += m.MFE
			lossMAE += m.MAE
			lossEff += m.ExitEfficiency
		}
	}

	if n := len(report.Trades); n > 0 {
		report.AvgMFE = sumMFE / float64(n)
		report.AvgMAE = sumMAE / float64(n)
		report.AvgEfficiency = sumEff / float64(n)
	}
	if n := report.Winners.Trades; n > 0 {
		report.Winners.AvgMFE = winMFE / float64(n)
		report.Winners.AvgMAE = winMAE / float64(n)
		report.Winners.AvgEfficiency = winEff / float64(n)
	}
	if n := report.Losers.Trades; n > 0 {
		report.Losers.AvgMFE = lossMFE / float64(n)
		report.Losers.AvgMAE = lossMAE / float64(n)
		report.Losers.AvgEfficiency = lossEff / float64(n)
	}

	return report
}
