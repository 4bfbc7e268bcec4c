package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tradelens/internal/models"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "0.00", FormatCurrency(0))
	assert.Equal(t, "999.99", FormatCurrency(999.99))
	assert.Equal(t, "1,000.00", FormatCurrency(1000))
	assert.Equal(t, "1,234,567.89", FormatCurrency(1234567.89))
	assert.Equal(t, "-52,300.50", FormatCurrency(-52300.5))
}

func TestFormatPnL(t *testing.T) {
	assert.Equal(t, "+150.00", FormatPnL(150))
	assert.Equal(t, "-75.25", FormatPnL(-75.25))
	assert.Equal(t, "0.00", FormatPnL(0))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "+12.50%", FormatPercent(12.5))
	assert.Equal(t, "-3.33%", FormatPercent(-3.33))
	assert.Equal(t, "0.00%", FormatPercent(0))
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "1.63", FormatRatio(models.FiniteRatio(1.625)))
	assert.Equal(t, "∞", FormatRatio(models.UndefinedRatio()))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45s", FormatDuration(45*time.Second))
	assert.Equal(t, "3m 20s", FormatDuration(200*time.Second))
	assert.Equal(t, "2h 15m", FormatDuration(2*time.Hour+15*time.Minute))
	assert.Equal(t, "1d 6h", FormatDuration(30*time.Hour))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "longst...", TruncateString("longstringvalue", 9))
	assert.Equal(t, "lo", TruncateString("long", 2))
}

func TestTableRender(t *testing.T) {
	var buf bytes.Buffer
	output := &Output{writer: &buf, colorEnabled: false}

	table := NewTable(output, "TAG", "P&L")
	table.AddRow("setup:breakout", "+150.00")
	table.AddRow("emotion:fomo", "-75.25")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4, "header, separator and two rows")
	assert.Contains(t, lines[0], "TAG")
	assert.Contains(t, lines[2], "setup:breakout")
}
