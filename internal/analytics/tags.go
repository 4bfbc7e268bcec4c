package analytics

import (
	"sort"
	"strings"

	"tradelens/internal/models"
)

const (
	// Bounds on the combination enumeration. The level cap keeps the
	// subset blowup limited; callers must not remove it.
	minCombinationLevel = 2
	maxCombinationLevel = 5

	// Defensive cap on how many tag:value pairs a single trade
	// contributes to the combination pass. Traders rarely carry more
	// than ten tags per trade.
	maxPairsPerTrade = 10
)

// TagOptions parameterizes AggregateByTag. A zero CombinationLevel
// disables the combination pass; otherwise the level is clamped to
// [2,5]. Tags optionally restricts the per-tag-value pass to the named
// tags; an empty or invalid selection fails open and behaves as if no
// filter were supplied.
type TagOptions struct {
	CombinationLevel int
	MinTrades        int
	Tags             []string
}

// TagGroup is the performance of all trades sharing one tag value or
// one tag-value combination.
type TagGroup struct {
	Key              string        `json:"key"`
	Stats            Stats         `json:"stats"`
	Expectancy       float64       `json:"expectancy"`
	ConsistencyScore float64       `json:"consistency_score"`
	Series           []EquityPoint `json:"series,omitempty"`
	Peak             float64       `json:"peak"`
	MaxDrawdown      float64       `json:"max_drawdown"`
}

// TagAnalysis is the result of the per-tag-value pass plus the optional
// combination pass.
type TagAnalysis struct {
	Groups       []TagGroup `json:"groups"`
	Combinations []TagGroup `json:"combinations,omitempty"`
}

// AggregateByTag groups trades by every (tag, value) pair they carry
// and computes the full basic stat set per group, together with each
// group's own cumulative-P&L series, expectancy, and consistency score.
// When opts.CombinationLevel is set it additionally enumerates bounded
// tag-value combinations, drops combinations with fewer than
// opts.MinTrades trades, and ranks the survivors by profit factor
// descending (an undefined profit factor ranks by its raw gross
// profit, preferring groups with more data).
func AggregateByTag(trades []models.Trade, opts TagOptions) TagAnalysis {
	var analysis TagAnalysis

	selected := normalizeSelection(opts.Tags)

	groups := make(map[string][]models.Trade)
	for i := range trades {
		t := &trades[i]
		for name, values := range t.Tags {
			if selected != nil && !selected[name] {
				continue
			}
			for _, v := range values {
				key := name + ": " + v
				groups[key] = append(groups[key], *t)
			}
		}
	}

	for key, members := range groups {
		analysis.Groups = append(analysis.Groups, buildTagGroup(key, members))
	}
	sort.Slice(analysis.Groups, func(i, j int) bool {
		return analysis.Groups[i].Key < analysis.Groups[j].Key
	})

	if opts.CombinationLevel > 0 {
		analysis.Combinations = mineCombinations(trades, opts.CombinationLevel, opts.MinTrades)
	}

	return analysis
}

// mineCombinations enumerates, for each trade, every subset of its
// tag:value pairs of size 2..level and accumulates the trade into one
// group per subset key. Level is clamped to [2,5] and each trade
// contributes at most maxPairsPerTrade pairs.
func mineCombinations(trades []models.Trade, level, minTrades int) []TagGroup {
	if level < minCombinationLevel {
		level = minCombinationLevel
	}
	if level > maxCombinationLevel {
		level = maxCombinationLevel
	}
	if minTrades < 1 {
		minTrades = 1
	}

	groups := make(map[string][]models.Trade)
	for i := range trades {
		t := &trades[i]
		pairs := combinationPairs(t.Tags)
		if len(pairs) < minCombinationLevel {
			continue
		}
		top := level
		if top > len(pairs) {
			top = len(pairs)
		}
		for size := minCombinationLevel; size <= top; size++ {
			forEachSubset(pairs, size, func(subset []string) {
				key := strings.Join(subset, " + ")
				groups[key] = append(groups[key], *t)
			})
		}
	}

	var out []TagGroup
	for key, members := range groups {
		if len(members) < minTrades {
			continue
		}
		out = append(out, buildTagGroup(key, members))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return rankValue(out[i]) > rankValue(out[j])
	})
	return out
}

// rankValue orders combination groups: a defined profit factor ranks by
// its value, an undefined one by its raw gross profit.
func rankValue(g TagGroup) float64 {
	return g.Stats.ProfitFactor.Or(g.Stats.GrossProfit)
}

// combinationPairs flattens a trade's tag map into sorted "tag:value"
// strings, one per tag, using the first value when a tag carries
// several.
func combinationPairs(tags models.TagMap) []string {
	names := tags.Names()
	sort.Strings(names)
	if len(names) > maxPairsPerTrade {
		names = names[:maxPairsPerTrade]
	}
	pairs := make([]string, 0, len(names))
	for _, name := range names {
		values := tags[name]
		if len(values) == 0 {
			continue
		}
		pairs = append(pairs, name+":"+values[0])
	}
	return pairs
}

// forEachSubset calls fn with every size-k subset of pairs, in the
// sorted order of the input.
func forEachSubset(pairs []string, k int, fn func([]string)) {
	subset := make([]string, 0, k)
	var walk func(start int)
	walk = func(start int) {
		if len(subset) == k {
			fn(subset)
			return
		}
		// Upper bound leaves room for the picks still needed.
		for i := start; i <= len(pairs)-(k-len(subset)); i++ {
			subset = append(subset, pairs[i])
			walk(i + 1)
			subset = subset[:len(subset)-1]
		}
	}
	walk(0)
}

// buildTagGroup computes the full metric set for one group of trades.
func buildTagGroup(key string, members []models.Trade) TagGroup {
	g := TagGroup{
		Key:   key,
		Stats: ComputeBasicStats(members),
	}

	curve := ComputeEquityCurve(members, 0)
	g.Series = curve.Points
	g.Peak = curve.Peak
	g.MaxDrawdown = curve.MaxDrawdown

	g.Expectancy = expectancy(g.Stats)
	g.ConsistencyScore = consistencyScore(members, g.Stats)
	return g
}

// expectancy is win_prob*avg_win - loss_prob*|avg_loss|.
func expectancy(s Stats) float64 {
	if s.Total == 0 {
		return 0
	}
	winProb := float64(s.Wins) / float64(s.Total)
	lossProb := float64(s.Losses) / float64(s.Total)
	return winProb*s.AvgWin - lossProb*(-s.AvgLoss)
}

// consistencyScore is a bounded (0,1] heuristic: the steadier the win
// and loss sizes relative to their averages, the closer to 1.
func consistencyScore(members []models.Trade, s Stats) float64 {
	var wins, losses []float64
	for i := range members {
		if members[i].PnL == nil {
			continue
		}
		pnl := *members[i].PnL
		if pnl > 0 {
			wins = append(wins, pnl)
		} else if pnl < 0 {
			losses = append(losses, -pnl)
		}
	}

	spread := 1.0
	if s.AvgWin != 0 {
		spread += stddevOf(wins) / s.AvgWin
	}
	if s.AvgLoss != 0 {
		spread += stddevOf(losses) / (-s.AvgLoss)
	}
	return 1 / spread
}

// normalizeSelection trims and casefolds a caller-supplied tag
// selection. A selection that normalizes to nothing is treated as no
// filter at all rather than rejecting the computation.
func normalizeSelection(tags []string) map[string]bool {
	if len(tags) == 0 {
		return nil
	}
	set := make(map[string]bool, len(tags))
	for _, name := range tags {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		set[name] = true
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
