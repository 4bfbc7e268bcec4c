// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tradelens/internal/errors"
	"tradelens/internal/models"
)

// SQLiteStore implements TradeStore using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	closed bool
}

// NewSQLiteStore creates a new SQLite-based trade store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabaseError, "failed to open database at %s: %v", dbPath, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, errors.Wrapf(errors.ErrDatabaseError, "failed to initialize schema: %v", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Trades table for journaled trades
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		symbol TEXT NOT NULL,
		direction TEXT NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL NOT NULL,
		high_price REAL,
		low_price REAL,
		stop_loss REAL,
		take_profit REAL,
		quantity REAL NOT NULL DEFAULT 0,
		risk_amount REAL,
		pnl REAL,
		rr REAL,
		open_time DATETIME,
		close_time DATETIME,
		date DATETIME NOT NULL,
		tags TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);
	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
	`

	_, err := s.db.Exec(schema)
	return err
}

const tradeColumns = `id, symbol, direction, entry_price, exit_price,
	high_price, low_price, stop_loss, take_profit, quantity, risk_amount,
	pnl, rr, open_time, close_time, date, tags`

// SaveTrade inserts or replaces a single trade.
func (s *SQLiteStore) SaveTrade(ctx context.Context, trade *models.Trade) error {
	return s.SaveTrades(ctx, []models.Trade{*trade})
}

// SaveTrades inserts or replaces a batch of trades in one transaction.
func (s *SQLiteStore) SaveTrades(ctx context.Context, trades []models.Trade) error {
	if s.closed {
		return errors.ErrStoreClosed
	}
	if len(trades) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO trades (`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing insert")
	}
	defer stmt.Close()

	for i := range trades {
		t := &trades[i]

		tagsJSON, err := marshalTags(t.Tags)
		if err != nil {
			return errors.Wrapf(err, "encoding tags for trade %s", t.ID)
		}

		_, err = stmt.ExecContext(ctx,
			t.ID, t.Symbol, string(t.Direction), t.EntryPrice, t.ExitPrice,
			nullFloat(t.HighPrice), nullFloat(t.LowPrice),
			nullFloat(t.StopLoss), nullFloat(t.TakeProfit),
			t.Quantity,
			nullFloat(t.RiskAmount), nullFloat(t.PnL), nullFloat(t.RR),
			nullTime(t.OpenTime), nullTime(t.CloseTime),
			t.Date, tagsJSON,
		)
		if err != nil {
			return errors.Wrapf(err, "inserting trade %s", t.ID)
		}
	}

	return tx.Commit()
}

// GetTrades retrieves trades matching the filter, ordered by date.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	if s.closed {
		return nil, errors.ErrStoreClosed
	}

	query := `SELECT ` + tradeColumns + ` FROM trades WHERE 1=1`
	args := []interface{}{}

	if filter.Symbol != "" {
		query += " AND symbol = ?"
		args = append(args, filter.Symbol)
	}
	if filter.Direction != "" {
		query += " AND direction = ?"
		args = append(args, string(filter.Direction))
	}
	if !filter.StartDate.IsZero() {
		query += " AND date >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND date <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY date ASC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying trades")
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, *trade)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating trades")
	}

	// Tag filters work on the decoded map; pushing them into SQL would
	// need json_each and loses the normalized-name semantics.
	if filter.Tag != "" {
		trades = filterByTag(trades, filter.Tag)
	}

	return trades, nil
}

// GetTradeByID retrieves a single trade by ID.
func (s *SQLiteStore) GetTradeByID(ctx context.Context, id string) (*models.Trade, error) {
	if s.closed {
		return nil, errors.ErrStoreClosed
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+tradeColumns+` FROM trades WHERE id = ?`, id)

	trade, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTradeNotFound
	}
	if err != nil {
		return nil, err
	}
	return trade, nil
}

// DeleteTrade removes a trade by ID.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, id string) error {
	if s.closed {
		return errors.ErrStoreClosed
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "deleting trade")
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.ErrTradeNotFound
	}
	return nil
}

// CountTrades returns the total number of stored trades.
func (s *SQLiteStore) CountTrades(ctx context.Context) (int, error) {
	if s.closed {
		return 0, errors.ErrStoreClosed
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trades`).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, "counting trades")
	}
	return count, nil
}

// Close closes the underlying database. Further calls on the store
// report ErrStoreClosed.
func (s *SQLiteStore) Close() error {
	s.closed = true
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row rowScanner) (*models.Trade, error) {
	var (
		t         models.Trade
		direction string
		high      sql.NullFloat64
		low       sql.NullFloat64
		stop      sql.NullFloat64
		target    sql.NullFloat64
		risk      sql.NullFloat64
		pnl       sql.NullFloat64
		rr        sql.NullFloat64
		openTime  sql.NullTime
		closeTime sql.NullTime
		tagsJSON  sql.NullString
	)

	err := row.Scan(
		&t.ID, &t.Symbol, &direction, &t.EntryPrice, &t.ExitPrice,
		&high, &low, &stop, &target, &t.Quantity, &risk, &pnl, &rr,
		&openTime, &closeTime, &t.Date, &tagsJSON,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, errors.Wrap(err, "scanning trade")
	}

	t.Direction = models.Direction(direction)
	t.HighPrice = floatPtr(high)
	t.LowPrice = floatPtr(low)
	t.StopLoss = floatPtr(stop)
	t.TakeProfit = floatPtr(target)
	t.RiskAmount = floatPtr(risk)
	t.PnL = floatPtr(pnl)
	t.RR = floatPtr(rr)
	t.OpenTime = timePtr(openTime)
	t.CloseTime = timePtr(closeTime)

	if tagsJSON.Valid && tagsJSON.String != "" {
		var raw map[string][]string
		if err := json.Unmarshal([]byte(tagsJSON.String), &raw); err != nil {
			return nil, errors.NewDataError("trade", t.ID, "decoding tags", err)
		}
		t.Tags = models.NormalizeTags(raw)
	}

	return &t, nil
}

func filterByTag(trades []models.Trade, tag string) []models.Trade {
	name := strings.ToLower(strings.TrimSpace(tag))
	value := ""
	if idx := strings.Index(name, ":"); idx >= 0 {
		name, value = strings.TrimSpace(name[:idx]), strings.TrimSpace(name[idx+1:])
	}
	if name == "" {
		return trades
	}

	var out []models.Trade
	for i := range trades {
		values, ok := trades[i].Tags[name]
		if !ok {
			continue
		}
		if value == "" {
			out = append(out, trades[i])
			continue
		}
		for _, v := range values {
			if strings.EqualFold(v, value) {
				out = append(out, trades[i])
				break
			}
		}
	}
	return out
}

func marshalTags(tags models.TagMap) (sql.NullString, error) {
	if len(tags) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
