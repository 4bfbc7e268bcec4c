package store

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"tradelens/internal/errors"
	"tradelens/internal/models"
	"tradelens/pkg/id"
)

// csvTrade is the on-disk CSV row shape. Optional columns stay empty
// strings so a partially filled journal still round-trips.
type csvTrade struct {
	ID         string `csv:"id"`
	Symbol     string `csv:"symbol"`
	Direction  string `csv:"direction"`
	EntryPrice string `csv:"entry_price"`
	ExitPrice  string `csv:"exit_price"`
	HighPrice  string `csv:"high_price"`
	LowPrice   string `csv:"low_price"`
	StopLoss   string `csv:"stop_loss"`
	TakeProfit string `csv:"take_profit"`
	Quantity   string `csv:"quantity"`
	RiskAmount string `csv:"risk_amount"`
	PnL        string `csv:"pnl"`
	RR         string `csv:"rr"`
	OpenTime   string `csv:"open_time"`
	CloseTime  string `csv:"close_time"`
	Date       string `csv:"date"`
	// Tags use "name:value;name:value" with repeated names allowed.
	Tags string `csv:"tags"`
}

// ImportResult summarizes a CSV import.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

// ImportCSV reads trades from a CSV file. Rows that fail to parse are
// skipped and reported; a bad row never aborts the rest of the file.
func ImportCSV(path string) ([]models.Trade, *ImportResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrImportFailed, err.Error())
	}
	defer file.Close()

	var rows []*csvTrade
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, nil, errors.NewImportError(path, 0, err)
	}

	result := &ImportResult{}
	var trades []models.Trade

	for i, row := range rows {
		trade, err := row.toTrade()
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, errors.NewImportError(path, i+2, err))
			continue
		}
		trades = append(trades, *trade)
		result.Imported++
	}

	return trades, result, nil
}

// ExportCSV writes trades to a CSV file.
func ExportCSV(path string, trades []models.Trade) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating export file")
	}
	defer file.Close()

	rows := make([]*csvTrade, len(trades))
	for i := range trades {
		rows[i] = fromTrade(&trades[i])
	}

	return gocsv.MarshalFile(&rows, file)
}

func (r *csvTrade) toTrade() (*models.Trade, error) {
	direction := models.Direction(strings.ToLower(strings.TrimSpace(r.Direction)))
	if direction != models.DirectionLong && direction != models.DirectionShort {
		return nil, errors.NewValidationError("direction", r.Direction, "must be long or short")
	}

	entry, err := parseFloat(r.EntryPrice, "entry_price")
	if err != nil {
		return nil, err
	}
	exit, err := parseFloat(r.ExitPrice, "exit_price")
	if err != nil {
		return nil, err
	}

	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}

	trade := &models.Trade{
		ID:         strings.TrimSpace(r.ID),
		Symbol:     strings.TrimSpace(r.Symbol),
		Direction:  direction,
		EntryPrice: entry,
		ExitPrice:  exit,
		Date:       date,
		Tags:       parseTags(r.Tags),
	}
	if trade.ID == "" {
		trade.ID = id.New()
	}
	if trade.Symbol == "" {
		return nil, errors.NewValidationError("symbol", r.Symbol, "must not be empty")
	}

	// Quantity is optional in the file; an absent column means 0.
	if q, err := parseOptFloat(r.Quantity, "quantity"); err != nil {
		return nil, err
	} else if q != nil {
		trade.Quantity = *q
	}

	if trade.HighPrice, err = parseOptFloat(r.HighPrice, "high_price"); err != nil {
		return nil, err
	}
	if trade.LowPrice, err = parseOptFloat(r.LowPrice, "low_price"); err != nil {
		return nil, err
	}
	if trade.StopLoss, err = parseOptFloat(r.StopLoss, "stop_loss"); err != nil {
		return nil, err
	}
	if trade.TakeProfit, err = parseOptFloat(r.TakeProfit, "take_profit"); err != nil {
		return nil, err
	}
	if trade.RiskAmount, err = parseOptFloat(r.RiskAmount, "risk_amount"); err != nil {
		return nil, err
	}
	if trade.PnL, err = parseOptFloat(r.PnL, "pnl"); err != nil {
		return nil, err
	}
	if trade.RR, err = parseOptFloat(r.RR, "rr"); err != nil {
		return nil, err
	}
	if trade.OpenTime, err = parseOptTime(r.OpenTime, "open_time"); err != nil {
		return nil, err
	}
	if trade.CloseTime, err = parseOptTime(r.CloseTime, "close_time"); err != nil {
		return nil, err
	}

	return trade, nil
}

func fromTrade(t *models.Trade) *csvTrade {
	return &csvTrade{
		ID:         t.ID,
		Symbol:     t.Symbol,
		Direction:  string(t.Direction),
		EntryPrice: formatFloat(t.EntryPrice),
		ExitPrice:  formatFloat(t.ExitPrice),
		HighPrice:  formatOptFloat(t.HighPrice),
		LowPrice:   formatOptFloat(t.LowPrice),
		StopLoss:   formatOptFloat(t.StopLoss),
		TakeProfit: formatOptFloat(t.TakeProfit),
		Quantity:   formatFloat(t.Quantity),
		RiskAmount: formatOptFloat(t.RiskAmount),
		PnL:        formatOptFloat(t.PnL),
		RR:         formatOptFloat(t.RR),
		OpenTime:   formatOptTime(t.OpenTime),
		CloseTime:  formatOptTime(t.CloseTime),
		Date:       t.Date.Format(time.RFC3339),
		Tags:       formatTags(t.Tags),
	}
}

func parseTags(raw string) models.TagMap {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	tags := map[string][]string{}
	for _, pair := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		tags[name] = append(tags[name], value)
	}
	return models.NormalizeTags(tags)
}

func formatTags(tags models.TagMap) string {
	if len(tags) == 0 {
		return ""
	}
	var parts []string
	for _, name := range tags.Names() {
		for _, value := range tags[name] {
			parts = append(parts, name+":"+value)
		}
	}
	return strings.Join(parts, ";")
}

func parseFloat(raw, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "invalid %s %q", field, raw)
	}
	return v, nil
}

func parseOptFloat(raw, field string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := parseFloat(raw, field)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseDate accepts RFC3339 timestamps and plain dates.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.Wrap(errors.ErrInvalidInput, "missing date")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, errors.Wrapf(errors.ErrInvalidInput, "invalid date %q", raw)
}

func parseOptTime(raw, field string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid %s %q", field, raw)
	}
	return &t, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatOptTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(time.RFC3339)
}
