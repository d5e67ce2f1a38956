package cmd

import (
	"fmt"
	"strings"
	"time"

	"db-ddl/internal/engine"
	"db-ddl/internal/schema"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	count     int
	batchSize int
	seed      int64
	nullRatio float64
	tables    []string
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill tables with generated rows using multi-row inserts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Fetch count from Viper (Flag > Config > Default)
		targetCount := viper.GetInt("settings.default_count")
		if count > 0 {
			targetCount = count
		}
		batch := viper.GetInt("settings.batch_size")
		if batchSize > 0 {
			batch = batchSize
		}

		// Table selection: --tables, then settings.tables, then every table.
		targetTableNames := tables
		if len(targetTableNames) == 0 {
			targetTableNames = viper.GetStringSlice("settings.tables")
		}
		if len(targetTableNames) == 0 {
			names, err := app.Inspector.TableNames(ctx)
			if err != nil {
				return err
			}
			targetTableNames = names
		}
		if len(targetTableNames) == 0 {
			return fmt.Errorf("no tables to fill")
		}

		app.Logger.Info("analyzing schema", "tables", len(targetTableNames))
		targetTables := make([]*schema.TableDescriptor, 0, len(targetTableNames))
		for _, name := range targetTableNames {
			t, err := app.Inspector.DescribeTable(ctx, app.Builder.RawTableName(name))
			if err != nil {
				return err
			}
			targetTables = append(targetTables, t)
		}

		if dryRun {
			fmt.Fprintln(cmd.OutOrStdout(), "Dry run, no rows will be written:")
			for i, t := range targetTables {
				fmt.Fprintf(cmd.OutOrStdout(), "[%02d] %-24s %d rows in batches of %d (%s)\n",
					i+1, t.Name, engine.MaxInsertCount(t, targetCount), batch, strings.Join(t.ColumnNames(), ", "))
			}
			return nil
		}

		gen := engine.NewGenerator(seed)
		if seed == 0 {
			gen = engine.NewGenerator(time.Now().UnixNano())
		}
		gen.NullRatio = nullRatio

		total := 0
		for _, t := range targetTables {
			total += engine.MaxInsertCount(t, targetCount)
		}

		app.Logger.Info("starting fill", "count", targetCount, "batch", batch)
		start := time.Now()

		uiprogress.Start()
		bar := uiprogress.AddBar(max(total, 1)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Inserting: "
		})

		pumper := engine.NewPumper(app.Store, app.Builder, gen, batch, app.Logger)
		results, err := pumper.Pump(ctx, targetTables, targetCount, func(n int) {
			bar.Set(bar.Current() + n)
		})

		uiprogress.Stop()

		if err != nil {
			return err
		}

		elapsed := time.Since(start)

		fmt.Fprintln(cmd.OutOrStdout(), "\nSummary:")
		inserted := 0
		for i, r := range results {
			icon := "✓"
			if r.Status != engine.StatusOK {
				icon = "!"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] [%02d/%02d] %-20s : %d rows (Target: %d) - %s\n",
				icon, i+1, len(results), r.Table, r.Actual, r.Target, r.Status)
			if r.Err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "    └ Error: %v\n", r.Err)
			}
			inserted += r.Actual
		}
		fmt.Fprintln(cmd.OutOrStdout(), "--------------------------------------------------")
		fmt.Fprintf(cmd.OutOrStdout(), "Total rows: %d\n", inserted)
		app.Logger.Info("fill done", "rows", inserted, "elapsed", elapsed)

		return nil
	},
}

func init() {
	RootCmd.AddCommand(fillCmd)

	fillCmd.Flags().IntVar(&count, "count", 0, "Number of rows to generate per table (overrides config)")
	fillCmd.Flags().IntVar(&batchSize, "batch", 0, "Rows per INSERT statement (overrides config)")
	fillCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for reproducible data (0 picks one)")
	fillCmd.Flags().Float64Var(&nullRatio, "null-ratio", 0.1, "Share of NULLs generated for nullable columns")
	fillCmd.Flags().StringSliceVarP(&tables, "tables", "t", []string{}, "Specific tables to fill (comma-separated)")
}
