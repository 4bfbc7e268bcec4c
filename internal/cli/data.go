// Package cli provides the command-line interface for the journal
// analytics application.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tradelens/internal/errors"
	"tradelens/internal/logging"
	"tradelens/internal/models"
	"tradelens/internal/store"
)

// addDataCommands adds trade import, export and listing commands.
func addDataCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newImportCmd(app))
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newTradesCmd(app))
}

// addFilterFlags registers the shared trade filter flags.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("symbol", "", "filter by symbol")
	cmd.Flags().String("direction", "", "filter by direction (long/short)")
	cmd.Flags().String("from", "", "filter from date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "filter to date (YYYY-MM-DD)")
	cmd.Flags().String("tag", "", "filter by tag name or name:value")
	cmd.Flags().Int("limit", 0, "maximum number of trades")
}

// filterFromFlags builds a TradeFilter from the shared flags.
func filterFromFlags(cmd *cobra.Command) (store.TradeFilter, error) {
	var filter store.TradeFilter

	filter.Symbol, _ = cmd.Flags().GetString("symbol")
	filter.Symbol = strings.ToUpper(filter.Symbol)
	filter.Tag, _ = cmd.Flags().GetString("tag")
	filter.Limit, _ = cmd.Flags().GetInt("limit")

	if direction, _ := cmd.Flags().GetString("direction"); direction != "" {
		d := models.Direction(strings.ToLower(direction))
		if d != models.DirectionLong && d != models.DirectionShort {
			return filter, errors.Wrapf(errors.ErrInvalidInput, "invalid direction %q", direction)
		}
		filter.Direction = d
	}

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, errors.Wrapf(errors.ErrInvalidInput, "invalid --from date %q", from)
		}
		filter.StartDate = t
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, errors.Wrapf(errors.ErrInvalidInput, "invalid --to date %q", to)
		}
		// Inclusive end of day
		filter.EndDate = t.Add(24*time.Hour - time.Nanosecond)
	}

	return filter, nil
}

// loadTrades fetches trades matching the shared filter flags.
func loadTrades(app *App, cmd *cobra.Command) ([]models.Trade, error) {
	if app.Store == nil {
		return nil, fmt.Errorf("store not initialized")
	}

	filter, err := filterFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return app.Store.GetTrades(ctx, filter)
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import trades from a CSV file",
		Long: `Import trades from a CSV file into the local database.

Rows that fail to parse are skipped and reported; the rest of the file
still imports. Rows without an id get a generated one.`,
		Example: `  tradelens import trades.csv`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Error("Store not initialized")
				return fmt.Errorf("store not initialized")
			}

			trades, result, err := store.ImportCSV(args[0])
			if err != nil {
				output.Error("Import failed: %v", err)
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			if err := app.Store.SaveTrades(ctx, trades); err != nil {
				output.Error("Failed to save trades: %v", err)
				return err
			}

			logging.LogImport(app.Logger, args[0], result.Imported, result.Skipped)

			if output.IsJSON() {
				return output.JSON(map[string]int{
					"imported": result.Imported,
					"skipped":  result.Skipped,
				})
			}

			output.Success("✓ Imported %d trades (%d skipped)", result.Imported, result.Skipped)
			for _, importErr := range result.Errors {
				output.Warning("  %v", importErr)
			}
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Export trades to a CSV file",
		Example: `  tradelens export trades.csv
  tradelens export nifty.csv --symbol NIFTY`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := loadTrades(app, cmd)
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			if len(trades) == 0 {
				output.Error("No trades match the filter")
				return errors.ErrNoTrades
			}

			if err := store.ExportCSV(args[0], trades); err != nil {
				output.Error("Export failed: %v", err)
				return err
			}

			output.Success("✓ Exported %d trades to %s", len(trades), args[0])
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func newTradesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trades",
		Short: "List journaled trades",
		Example: `  tradelens trades
  tradelens trades --symbol NIFTY --from 2025-01-01
  tradelens trades --tag setup:breakout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades, err := loadTrades(app, cmd)
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}

			if len(trades) == 0 {
				output.Info("No trades found")
				return nil
			}

			table := NewTable(output, "DATE", "SYMBOL", "DIR", "ENTRY", "EXIT", "P&L", "TAGS")
			for i := range trades {
				t := &trades[i]
				pnl := "-"
				if t.PnL != nil {
					pnl = output.FormatPnL(*t.PnL)
				}
				table.AddRow(
					FormatDate(t.Date),
					t.Symbol,
					strings.ToUpper(string(t.Direction)),
					FormatCurrency(t.EntryPrice),
					FormatCurrency(t.ExitPrice),
					pnl,
					TruncateString(tagSummary(t.Tags), 40),
				)
			}
			table.Render()
			output.Println()
			output.Dim("%d trades", len(trades))
			return nil
		},
	}
	addFilterFlags(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a trade by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := app.Store.DeleteTrade(ctx, args[0]); err != nil {
				output.Error("Failed to delete trade: %v", err)
				return err
			}
			output.Success("✓ Deleted trade %s", args[0])
			return nil
		},
	})

	return cmd
}

func tagSummary(tags models.TagMap) string {
	if len(tags) == 0 {
		return ""
	}
	var parts []string
	for _, name := range tags.Names() {
		parts = append(parts, name+":"+strings.Join(tags[name], "|"))
	}
	return strings.Join(parts, " ")
}
