// Package cli provides the command-line interface for the journal
// analytics application.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// addHelpCommands adds help and documentation commands.
func addHelpCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newCommandsCmd(app))
	rootCmd.AddCommand(newExamplesCmd(app))
}

func newCommandsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List all commands by category",
		Long:  "Display all available commands organized by category.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Tradelens Commands")
			output.Println()

			categories := []struct {
				name     string
				commands []struct {
					cmd  string
					desc string
				}
			}{
				{
					name: "Journal",
					commands: []struct {
						cmd  string
						desc string
					}{
						{"import <file.csv>", "Import trades from CSV"},
						{"export <file.csv>", "Export trades to CSV"},
						{"trades", "List journaled trades"},
						{"trades delete <id>", "Delete a trade"},
					},
				},
				{
					name: "Analytics",
					commands: []struct {
						cmd  string
						desc string
					}{
						{"analyze stats", "Basic performance statistics"},
						{"analyze equity", "Equity curve and drawdown"},
						{"analyze risk", "Sharpe and Sortino ratios"},
						{"analyze streaks", "Winning and losing streaks"},
						{"analyze exits", "Exit quality (MFE/MAE)"},
						{"analyze distribution", "P&L histogram and percentiles"},
						{"tags", "Performance by tag and combination"},
						{"report", "Full performance report"},
					},
				},
				{
					name: "Configuration",
					commands: []struct {
						cmd  string
						desc string
					}{
						{"config show", "Show current configuration"},
						{"config path", "Show config directory"},
						{"config validate", "Validate configuration"},
						{"version", "Print version information"},
					},
				},
			}

			for _, cat := range categories {
				output.Info("%s", cat.name)
				for _, c := range cat.commands {
					output.Printf("  %-28s %s\n", c.cmd, c.desc)
				}
				output.Println()
			}

			output.Dim("Run 'tradelens help <command>' for details on any command.")
			return nil
		},
	}
}

func newExamplesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflows",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			sections := []struct {
				title string
				lines []string
			}{
				{
					title: "Getting started",
					lines: []string{
						"tradelens import trades.csv",
						"tradelens trades",
						"tradelens analyze stats",
					},
				},
				{
					title: "Drill into one market",
					lines: []string{
						"tradelens analyze stats --symbol NIFTY",
						"tradelens analyze equity --symbol NIFTY --from 2025-01-01",
						"tradelens analyze streaks --symbol NIFTY",
					},
				},
				{
					title: "Find what works",
					lines: []string{
						"tradelens tags",
						"tradelens tags --level 2 --min-trades 5",
						"tradelens tags --only setup --only emotion",
					},
				},
				{
					title: "Exit discipline",
					lines: []string{
						"tradelens analyze exits",
						"tradelens analyze exits --tag setup:breakout",
					},
				},
				{
					title: "Machine-readable output",
					lines: []string{
						"tradelens report --json > report.json",
						"tradelens analyze distribution --json",
					},
				},
			}

			output.Bold("Common Workflows")
			output.Println()
			for _, s := range sections {
				output.Info("%s", s.title)
				for _, line := range s.lines {
					output.Printf("  %s\n", line)
				}
				output.Println()
			}

			output.Dim(strings.TrimSpace(`
All analytics commands accept --symbol, --direction, --from, --to,
--tag and --limit to narrow the trade set.`))
			return nil
		},
	}
}
