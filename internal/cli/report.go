// Package cli provides the command-line interface for the journal
// analytics application.
package cli

import (
	"github.com/spf13/cobra"

	"tradelens/internal/analytics"
)

// addReportCommands adds the combined report command.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newReportCmd(app))
}

// fullReport bundles every analysis for one trade set.
type fullReport struct {
	Stats        analytics.Stats             `json:"stats"`
	Equity       analytics.EquityCurve       `json:"equity"`
	RiskAdjusted analytics.RiskAdjusted      `json:"risk_adjusted"`
	Streaks      analytics.StreakReport      `json:"streaks"`
	ExitQuality  analytics.ExitQualityReport `json:"exit_quality"`
	Tags         analytics.TagAnalysis       `json:"tags"`
	Distribution analytics.Histogram         `json:"distribution"`
}

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Full performance report",
		Long: `Run every analysis over the filtered trades and render them as one
report. With --json the full report is emitted as a single document,
suitable for piping into other tools.`,
		Example: `  tradelens report
  tradelens report --symbol NIFTY --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := analyzedTrades(app, cmd, "report")
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			balance := app.Config.Account.InitialBalance
			report := fullReport{
				Stats:        analytics.ComputeBasicStats(trades),
				Equity:       analytics.ComputeEquityCurve(trades, balance),
				RiskAdjusted: analytics.ComputeRiskAdjusted(trades, balance),
				Streaks:      analytics.ComputeStreaks(trades),
				ExitQuality:  analytics.ComputeExitQualityBatch(trades),
				Distribution: analytics.BuildDistribution(trades),
				Tags: analytics.AggregateByTag(trades, analytics.TagOptions{
					CombinationLevel: app.Config.Analytics.CombinationLevel,
					MinTrades:        app.Config.Analytics.MinTrades,
				}),
			}

			if output.IsJSON() {
				return output.JSON(report)
			}

			renderStats(output, report.Stats)
			output.Println()

			output.Bold("Equity")
			output.Printf("  Final Equity:    %s\n", FormatCurrency(report.Equity.FinalEquity))
			output.Printf("  Max Drawdown:    %s (%.2f%%)\n",
				FormatCurrency(report.Equity.MaxDrawdown), report.Equity.MaxDrawdownPct)
			output.Println()

			output.Bold("Risk-Adjusted")
			output.Printf("  Sharpe:          %.2f\n", report.RiskAdjusted.Sharpe)
			output.Printf("  Sortino:         %.2f\n", report.RiskAdjusted.Sortino)
			output.Println()

			output.Bold("Streaks")
			output.Printf("  Current:         %s\n", describeStreak(output, report.Streaks.CurrentStreak))
			output.Printf("  Longest Winning: %s\n", describeStreak(output, report.Streaks.LongestWinning))
			output.Printf("  Longest Losing:  %s\n", describeStreak(output, report.Streaks.LongestLosing))
			output.Println()

			output.Bold("Exit Quality")
			output.Printf("  Avg Efficiency:  %.1f%% over %d measured trades\n",
				report.ExitQuality.AvgEfficiency, len(report.ExitQuality.Trades))
			output.Println()

			if len(report.Tags.Groups) > 0 {
				output.Bold("Tags")
				renderTagGroups(output, report.Tags.Groups)
				if len(report.Tags.Combinations) > 0 {
					output.Println()
					output.Bold("Top Combinations")
					renderTagGroups(output, report.Tags.Combinations)
				}
			}
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}
