package analytics

import (
	"time"

	"tradelens/internal/models"
)

// StreakType classifies a run of consecutive same-outcome trades.
type StreakType string

const (
	StreakNone    StreakType = "none"
	StreakWinning StreakType = "winning"
	StreakLosing  StreakType = "losing"
)

// Streak is a maximal run of consecutive wins or losses in
// chronological order. Break-even trades extend losing streaks.
type Streak struct {
	Type  StreakType `json:"type"`
	Count int        `json:"count"`
	PnL   float64    `json:"pnl"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
}

// StreakReport summarizes win/loss runs over a trade set.
type StreakReport struct {
	CurrentStreak  Streak   `json:"current_streak"`
	LongestWinning Streak   `json:"longest_winning_streak"`
	LongestLosing  Streak   `json:"longest_losing_streak"`
	WinningStreaks []Streak `json:"winning_streaks"`
	LosingStreaks  []Streak `json:"losing_streaks"`
	WinRate        float64  `json:"win_rate"`
}

// ComputeStreaks runs the win/loss state machine over the trades in
// date order. A positive P&L continues or starts a winning streak; any
// other realized P&L (including break-even) continues or starts a
// losing streak. Trades without a P&L are skipped without resetting the
// state. Closed runs of length one are dropped from the historical
// lists but still compete for the longest-streak trackers; the final
// unterminated run is reported as CurrentStreak regardless of length.
func ComputeStreaks(trades []models.Trade) StreakReport {
	report := StreakReport{
		CurrentStreak:  Streak{Type: StreakNone},
		LongestWinning: Streak{Type: StreakWinning},
		LongestLosing:  Streak{Type: StreakLosing},
	}

	ordered := sortedByDate(trades)

	var current Streak
	current.Type = StreakNone

	var wins, counted int

	for i := range ordered {
		t := &ordered[i]
		if t.PnL == nil {
			continue
		}
		pnl := *t.PnL
		counted++

		kind := StreakLosing
		if pnl > 0 {
			kind = StreakWinning
			wins++
		}

		if current.Type == kind {
			current.Count++
			current.PnL += pnl
			current.End = t.Date
			continue
		}

		if current.Type != StreakNone {
			report.close(current)
		}
		current = Streak{
			Type:  kind,
			Count: 1,
			PnL:   pnl,
			Start: t.Date,
			End:   t.Date,
		}
	}

	if current.Type != StreakNone {
		report.CurrentStreak = current
		report.track(current)
	}

	if counted > 0 {
		report.WinRate = float64(wins) / float64(counted) * 100
	}
	return report
}

// close records a finished streak: length-one runs are discarded from
// the historical lists but still update the longest trackers.
func (r *StreakReport) close(s Streak) {
	if s.Count > 1 {
		switch s.Type {
		case StreakWinning:
			r.WinningStreaks = append(r.WinningStreaks, s)
		case StreakLosing:
			r.LosingStreaks = append(r.LosingStreaks, s)
		}
	}
	r.track(s)
}

func (r *StreakReport) track(s Streak) {
	switch s.Type {
	case StreakWinning:
		if s.Count > r.LongestWinning.Count {
			r.LongestWinning = s
		}
	case StreakLosing:
		if s.Count > r.LongestLosing.Count {
			r.LongestLosing = s
		}
	}
}
