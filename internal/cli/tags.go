// Package cli provides the command-line interface for the journal
// analytics application.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tradelens/internal/analytics"
)

// addTagCommands adds the tag aggregation command.
func addTagCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newTagsCmd(app))
}

func newTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Performance broken down by tag",
		Long: `Group trades by every tag value they carry and report each group's
performance. With --level, also mine tag-value combinations (pairs,
triples, ...) and rank them by profit factor.`,
		Example: `  tradelens tags
  tradelens tags --level 2 --min-trades 5
  tradelens tags --only setup --only emotion`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := analyzedTrades(app, cmd, "tags")
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			level, _ := cmd.Flags().GetInt("level")
			minTrades, _ := cmd.Flags().GetInt("min-trades")
			only, _ := cmd.Flags().GetStringSlice("only")

			if minTrades == 0 {
				minTrades = app.Config.Analytics.MinTrades
			}

			analysis := analytics.AggregateByTag(trades, analytics.TagOptions{
				CombinationLevel: level,
				MinTrades:        minTrades,
				Tags:             only,
			})

			if output.IsJSON() {
				return output.JSON(analysis)
			}

			if len(analysis.Groups) == 0 {
				output.Info("No tagged trades found")
				return nil
			}

			output.Bold("Tag Performance")
			renderTagGroups(output, analysis.Groups)

			if len(analysis.Combinations) > 0 {
				output.Println()
				output.Bold("Top Combinations")
				renderTagGroups(output, analysis.Combinations)
			}
			return nil
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().Int("level", 0, "mine tag combinations of this size (2-5)")
	cmd.Flags().Int("min-trades", 0, "minimum trades per combination (default from config)")
	cmd.Flags().StringSlice("only", nil, "restrict to these tag names")

	return cmd
}

func renderTagGroups(output *Output, groups []analytics.TagGroup) {
	table := NewTable(output, "TAG", "TRADES", "WIN RATE", "P&L", "PF", "EXPECT", "CONSIST", "MAX DD")
	for _, g := range groups {
		table.AddRow(
			TruncateString(g.Key, 40),
			fmt.Sprintf("%d", g.Stats.Total),
			fmt.Sprintf("%.1f%%", g.Stats.WinRate),
			output.FormatPnL(g.Stats.TotalPnL),
			FormatRatio(g.Stats.ProfitFactor),
			FormatPnL(g.Expectancy),
			fmt.Sprintf("%.2f", g.ConsistencyScore),
			FormatCurrency(g.MaxDrawdown),
		)
	}
	table.Render()
}
