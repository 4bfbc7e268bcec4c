package models

import "time"

// Direction represents which side of the market a trade was taken on.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Trade represents a completed, journaled trade. Optional fields are
// pointers; a nil PnL means the trade is excluded from every ratio and
// classification computation but may still appear in raw listings.
type Trade struct {
	ID         string     `json:"id"`
	Symbol     string     `json:"symbol"`
	Direction  Direction  `json:"direction"`
	EntryPrice float64    `json:"entry_price"`
	ExitPrice  float64    `json:"exit_price"`
	HighPrice  *float64   `json:"high_price,omitempty"`
	LowPrice   *float64   `json:"low_price,omitempty"`
	StopLoss   *float64   `json:"stop_loss,omitempty"`
	TakeProfit *float64   `json:"take_profit,omitempty"`
	Quantity   float64    `json:"quantity"`
	RiskAmount *float64   `json:"risk_amount,omitempty"`
	PnL        *float64   `json:"pnl,omitempty"`
	RR         *float64   `json:"rr,omitempty"`
	OpenTime   *time.Time `json:"open_time,omitempty"`
	CloseTime  *time.Time `json:"close_time,omitempty"`
	Date       time.Time  `json:"date"`
	Tags       TagMap     `json:"tags,omitempty"`
}

// HasPnL reports whether the trade carries a realized P&L.
func (t *Trade) HasPnL() bool {
	return t.PnL != nil
}

// IsWin reports whether the trade is a realized winner. A nil PnL is
// never a win; break-even counts as "not a win".
func (t *Trade) IsWin() bool {
	return t.PnL != nil && *t.PnL > 0
}

// HoldDuration returns the time between open and close, or zero when
// either timestamp is missing. Callers validate close > open.
func (t *Trade) HoldDuration() time.Duration {
	if t.OpenTime == nil || t.CloseTime == nil {
		return 0
	}
	return t.CloseTime.Sub(*t.OpenTime)
}

// Baseline is the account baseline an analysis runs against.
type Baseline struct {
	InitialBalance float64 `json:"initial_balance"`
}

// Valid reports whether the baseline can be used for risk-adjusted
// metrics. A zero or negative balance degrades those metrics to their
// zero sentinels instead of failing.
func (b Baseline) Valid() bool {
	return b.InitialBalance > 0
}

// Float64Ptr returns a pointer to v. Convenience for building trades
// with optional fields.
func Float64Ptr(v float64) *float64 { return &v }

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time { return &t }
