// Package cli provides the command-line interface for the journal
// analytics application.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tradelens/internal/analytics"
	"tradelens/internal/errors"
	"tradelens/internal/logging"
	"tradelens/internal/models"
)

// addAnalyzeCommands adds the analytics commands.
func addAnalyzeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze journaled trades",
		Long: `Compute performance analytics over the journaled trades.

All subcommands honor the shared filter flags, so any analysis can be
narrowed to a symbol, direction, date range or tag.`,
		Example: `  tradelens analyze stats
  tradelens analyze equity --symbol NIFTY
  tradelens analyze streaks --from 2025-01-01`,
	}

	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newEquityCmd(app))
	cmd.AddCommand(newRiskCmd(app))
	cmd.AddCommand(newStreaksCmd(app))
	cmd.AddCommand(newExitsCmd(app))
	cmd.AddCommand(newDistributionCmd(app))

	rootCmd.AddCommand(cmd)
}

// analyzedTrades loads the filtered trades and logs the run.
func analyzedTrades(app *App, cmd *cobra.Command, kind string) ([]models.Trade, error) {
	start := time.Now()
	trades, err := loadTrades(app, cmd)
	if err != nil {
		return nil, err
	}
	logging.LogAnalysis(app.Logger, kind, len(trades), time.Since(start))
	return trades, nil
}

func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Basic performance statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := analyzedTrades(app, cmd, "stats")
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			stats := analytics.ComputeBasicStats(trades)

			if output.IsJSON() {
				return output.JSON(stats)
			}

			renderStats(output, stats)
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func renderStats(output *Output, stats analytics.Stats) {
	output.Bold("Performance Statistics")
	output.Printf("  Trades:          %d (%d W / %d L / %d BE)\n",
		stats.Total, stats.Wins, stats.Losses, stats.Breakeven)
	output.Printf("  Win Rate:        %.1f%%\n", stats.WinRate)
	output.Printf("  Total P&L:       %s\n", output.FormatPnL(stats.TotalPnL))
	output.Printf("  Avg P&L:         %s\n", output.FormatPnL(stats.AvgPnL))
	output.Printf("  Profit Factor:   %s\n", FormatRatio(stats.ProfitFactor))
	output.Println()
	output.Printf("  Gross Profit:    %s\n", FormatCurrency(stats.GrossProfit))
	output.Printf("  Gross Loss:      %s\n", FormatCurrency(stats.GrossLoss))
	output.Printf("  Avg Win:         %s\n", output.FormatPnL(stats.AvgWin))
	output.Printf("  Avg Loss:        %s\n", output.FormatPnL(stats.AvgLoss))
	output.Printf("  Largest Win:     %s\n", output.FormatPnL(stats.LargestWin))
	output.Printf("  Largest Loss:    %s\n", output.FormatPnL(stats.LargestLoss))
	if stats.AvgRR > 0 {
		output.Printf("  Avg R:R:         1:%.2f\n", stats.AvgRR)
	}
}

func newEquityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Equity curve and drawdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := analyzedTrades(app, cmd, "equity")
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			curve := analytics.ComputeEquityCurve(trades, app.Config.Account.InitialBalance)

			if output.IsJSON() {
				return output.JSON(curve)
			}

			output.Bold("Equity Curve")
			output.Printf("  Initial Balance: %s\n", FormatCurrency(curve.InitialBalance))
			output.Printf("  Final Equity:    %s\n", FormatCurrency(curve.FinalEquity))
			output.Printf("  Peak:            %s\n", FormatCurrency(curve.Peak))
			output.Printf("  Max Drawdown:    %s (%.2f%%)\n",
				FormatCurrency(curve.MaxDrawdown), curve.MaxDrawdownPct)
			output.Println()

			if len(curve.Points) == 0 {
				output.Info("No realized trades")
				return nil
			}

			table := NewTable(output, "DATE", "EQUITY", "CUM P&L")
			for _, p := range curve.Points {
				table.AddRow(
					FormatDate(p.Date),
					FormatCurrency(p.Equity),
					output.FormatPnL(p.CumulativePnL),
				)
			}
			table.Render()
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func newRiskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Risk-adjusted return metrics (Sharpe, Sortino)",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := analyzedTrades(app, cmd, "risk")
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			baseline := models.Baseline{InitialBalance: app.Config.Account.InitialBalance}
			if !baseline.Valid() {
				output.Warning("%v; set account.initial_balance in config", errors.ErrNoBaseline)
			}

			ra := analytics.ComputeRiskAdjusted(trades, baseline.InitialBalance)

			if output.IsJSON() {
				return output.JSON(ra)
			}

			output.Bold("Risk-Adjusted Returns")
			output.Printf("  Sharpe Ratio:    %.2f\n", ra.Sharpe)
			output.Printf("  Sortino Ratio:   %.2f\n", ra.Sortino)
			output.Printf("  Trading Days:    %d\n", len(ra.DailyReturns))

			if len(ra.DailyReturns) > 0 {
				output.Println()
				table := NewTable(output, "DATE", "P&L", "RETURN")
				for _, d := range ra.DailyReturns {
					table.AddRow(
						FormatDate(d.Date),
						output.FormatPnL(d.PnL),
						output.FormatPercent(d.Return*100),
					)
				}
				table.Render()
			}
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func newStreaksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streaks",
		Short: "Winning and losing streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := analyzedTrades(app, cmd, "streaks")
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			report := analytics.ComputeStreaks(trades)

			if output.IsJSON() {
				return output.JSON(report)
			}

			output.Bold("Streak Analysis")
			output.Printf("  Win Rate:        %.1f%%\n", report.WinRate)
			output.Printf("  Current:         %s\n", describeStreak(output, report.CurrentStreak))
			output.Printf("  Longest Winning: %s\n", describeStreak(output, report.LongestWinning))
			output.Printf("  Longest Losing:  %s\n", describeStreak(output, report.LongestLosing))

			if len(report.WinningStreaks) > 0 || len(report.LosingStreaks) > 0 {
				output.Println()
				table := NewTable(output, "TYPE", "LENGTH", "P&L", "START", "END")
				for _, s := range report.WinningStreaks {
					table.AddRow(output.Green("WIN"), fmt.Sprintf("%d", s.Count),
						output.FormatPnL(s.PnL), FormatDate(s.Start), FormatDate(s.End))
				}
				for _, s := range report.LosingStreaks {
					table.AddRow(output.Red("LOSS"), fmt.Sprintf("%d", s.Count),
						output.FormatPnL(s.PnL), FormatDate(s.Start), FormatDate(s.End))
				}
				table.Render()
			}
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func describeStreak(output *Output, s analytics.Streak) string {
	switch s.Type {
	case analytics.StreakWinning:
		return output.Green(fmt.Sprintf("%d wins (%s)", s.Count, FormatPnL(s.PnL)))
	case analytics.StreakLosing:
		return output.Red(fmt.Sprintf("%d losses (%s)", s.Count, FormatPnL(s.PnL)))
	default:
		return output.DimText("none")
	}
}

func newExitsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exits",
		Short: "Exit quality (MFE/MAE, efficiency)",
		Long: `Measure how well exits captured the available move.

Only trades journaled with intratrade high and low prices participate;
the rest are excluded from the aggregate.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := analyzedTrades(app, cmd, "exits")
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			report := analytics.ComputeExitQualityBatch(trades)

			if output.IsJSON() {
				return output.JSON(report)
			}

			output.Bold("Exit Quality")
			output.Printf("  Trades Measured: %d\n", len(report.Trades))
			output.Printf("  Avg MFE:         %.2f%%\n", report.AvgMFE)
			output.Printf("  Avg MAE:         %.2f%%\n", report.AvgMAE)
			output.Printf("  Avg Efficiency:  %.1f%%\n", report.AvgEfficiency)
			output.Println()

			output.Bold("Winners vs Losers")
			table := NewTable(output, "", "TRADES", "AVG MFE", "AVG MAE", "AVG EFF")
			table.AddRow(output.Green("Winners"), fmt.Sprintf("%d", report.Winners.Trades),
				fmt.Sprintf("%.2f%%", report.Winners.AvgMFE),
				fmt.Sprintf("%.2f%%", report.Winners.AvgMAE),
				fmt.Sprintf("%.1f%%", report.Winners.AvgEfficiency))
			table.AddRow(output.Red("Losers"), fmt.Sprintf("%d", report.Losers.Trades),
				fmt.Sprintf("%.2f%%", report.Losers.AvgMFE),
				fmt.Sprintf("%.2f%%", report.Losers.AvgMAE),
				fmt.Sprintf("%.1f%%", report.Losers.AvgEfficiency))
			table.Render()
			output.Println()

			output.Bold("Efficiency Distribution")
			output.Printf("  < 50%%:          %d\n", report.Efficiency.Below50)
			output.Printf("  50-75%%:         %d\n", report.Efficiency.From50To75)
			output.Printf("  75-100%%:        %d\n", report.Efficiency.From75To100)
			output.Printf("  > 100%%:         %d\n", report.Efficiency.Above100)
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func newDistributionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "distribution",
		Aliases: []string{"dist"},
		Short:   "P&L distribution histogram and percentiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := analyzedTrades(app, cmd, "distribution")
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			hist := analytics.BuildDistribution(trades)

			if output.IsJSON() {
				return output.JSON(hist)
			}

			output.Bold("P&L Distribution")
			output.Printf("  Count:           %d\n", hist.Count)
			output.Printf("  Min / Max:       %s / %s\n",
				output.FormatPnL(hist.Min), output.FormatPnL(hist.Max))
			output.Printf("  Mean:            %s\n", output.FormatPnL(hist.Mean))
			output.Printf("  Std Dev:         %s\n", FormatCurrency(hist.StdDev))
			output.Println()

			output.Bold("Percentiles")
			output.Printf("  P10: %s  P25: %s  P50: %s  P75: %s  P90: %s\n",
				FormatPnL(hist.Percentiles.P10), FormatPnL(hist.Percentiles.P25),
				FormatPnL(hist.Percentiles.P50), FormatPnL(hist.Percentiles.P75),
				FormatPnL(hist.Percentiles.P90))
			output.Println()

			if hist.Count > 0 {
				renderHistogram(output, hist)
			}
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}

// renderHistogram draws bucket bars scaled to the largest bucket.
func renderHistogram(output *Output, hist analytics.Histogram) {
	maxCount := 0
	for _, b := range hist.Buckets {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	if maxCount == 0 {
		return
	}

	const barWidth = 40
	for _, b := range hist.Buckets {
		filled := b.Count * barWidth / maxCount
		bar := strings.Repeat("█", filled)
		if b.Count > 0 && filled == 0 {
			bar = "▏"
		}
		label := fmt.Sprintf("%10.2f .. %10.2f", b.Low, b.High)
		color := ColorGreen
		if b.High <= 0 {
			color = ColorRed
		}
		output.Printf("  %s %s %d\n", label, output.ColoredString(color, bar), b.Count)
	}
}
