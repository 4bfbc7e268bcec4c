package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTags(t *testing.T) {
	tags := NormalizeTags(map[string][]string{
		"  Setup ":  {" Breakout "},
		"EMOTION":   {"calm", "calm"},
		"":          {"orphan"},
		"blank-val": {"  "},
	})

	assert.Equal(t, []string{"Breakout"}, tags["setup"])
	assert.Equal(t, []string{"calm", "calm"}, tags["emotion"], "duplicates are preserved")
	assert.NotContains(t, tags, "")
	assert.NotContains(t, tags, "blank-val")
}

func TestNormalizeTagsEmpty(t *testing.T) {
	assert.Nil(t, NormalizeTags(nil))
	assert.Nil(t, NormalizeTags(map[string][]string{"x": {"  "}}))
}

func TestTagMapNames(t *testing.T) {
	m := TagMap{"setup": {"breakout"}, "emotion": {"calm"}, "market": {"trend"}}
	assert.Equal(t, []string{"emotion", "market", "setup"}, m.Names())
}

func TestTagMapClone(t *testing.T) {
	original := TagMap{"setup": {"breakout"}}
	clone := original.Clone()
	clone["setup"][0] = "changed"

	assert.Equal(t, "breakout", original["setup"][0])
}

func TestRatioJSON(t *testing.T) {
	type payload struct {
		PF Ratio `json:"pf"`
	}

	data, err := json.Marshal(payload{PF: FiniteRatio(1.625)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"pf":1.625}`, string(data))

	data, err = json.Marshal(payload{PF: UndefinedRatio()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"pf":null}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"pf":null}`), &decoded))
	assert.False(t, decoded.PF.Defined())

	require.NoError(t, json.Unmarshal([]byte(`{"pf":2.5}`), &decoded))
	v, ok := decoded.PF.Value()
	require.True(t, ok)
	assert.InDelta(t, 2.5, v, 1e-9)
}

func TestDivideRatio(t *testing.T) {
	assert.False(t, DivideRatio(10, 0).Defined())
	v, ok := DivideRatio(10, 4).Value()
	require.True(t, ok)
	assert.InDelta(t, 2.5, v, 1e-9)
	assert.InDelta(t, 7.0, UndefinedRatio().Or(7), 1e-9)
}

func TestTradeHelpers(t *testing.T) {
	open := time.Date(2025, 2, 3, 9, 30, 0, 0, time.UTC)
	closed := open.Add(2 * time.Hour)

	trade := Trade{
		PnL:       Float64Ptr(0),
		OpenTime:  TimePtr(open),
		CloseTime: TimePtr(closed),
	}

	assert.True(t, trade.HasPnL())
	assert.False(t, trade.IsWin(), "break-even is not a win")
	assert.Equal(t, 2*time.Hour, trade.HoldDuration())

	var openTrade Trade
	assert.False(t, openTrade.HasPnL())
	assert.Zero(t, openTrade.HoldDuration())
}

func TestBaselineValid(t *testing.T) {
	assert.True(t, Baseline{InitialBalance: 25000}.Valid())
	assert.False(t, Baseline{}.Valid())
	assert.False(t, Baseline{InitialBalance: -1}.Valid())
}
