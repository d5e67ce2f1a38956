package cmd

import (
	"fmt"
	"strings"

	"db-ddl/internal/builder"

	"github.com/spf13/cobra"
)

var (
	tableCols      []string
	tableRaw       []string
	tableEngine    string
	tableOptions   string
	tableNoOptions bool

	tablesPrefix string
)

var createTableCmd = &cobra.Command{
	Use:   "create-table <table>",
	Short: "Create a table from column definitions",
	Example: `  db-ddl create-table '{{%tokens}}' --col id=pk --col token="char(32) NOT NULL" \
    --raw "UNIQUE KEY idx_token (token)" --options "COMMENT='api tokens'"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := parseColumnDefs(tableCols, tableRaw)
		if err != nil {
			return err
		}

		var opts []builder.TableOption
		if tableEngine != "" {
			opts = append(opts, builder.WithEngine(tableEngine))
		}
		if tableOptions != "" {
			opts = append(opts, builder.WithOptions(tableOptions))
		}
		if tableNoOptions {
			opts = append(opts, builder.WithoutTableOptions())
		}

		sql, err := app.Builder.CreateTable(args[0], defs, opts...)
		if err != nil {
			return err
		}
		return runStatement(cmd, sql, nil, args[0])
	},
}

var dropTableCmd = &cobra.Command{
	Use:   "drop-table <table>...",
	Short: "Drop tables if they exist, last argument first",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		total := len(args)
		for i := total - 1; i >= 0; i-- {
			sql, err := app.Builder.DropTableIfExists(args[i])
			if err != nil {
				return err
			}
			if err := runStatement(cmd, sql, nil, args[i]); err != nil {
				return fmt.Errorf("failed to drop %s: %w", args[i], err)
			}
		}
		app.Logger.Info("tables dropped", "count", total)
		return nil
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables starting with a prefix",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := app.Config.TablePrefix
		if cmd.Flags().Changed("prefix") {
			prefix = tablesPrefix
		}

		if dryRun {
			stmt := app.Builder.ListTablesStatement(prefix)
			fmt.Fprintln(cmd.OutOrStdout(), stmt.String()+";")
			return nil
		}

		names, err := app.Builder.FindTableNames(cmd.Context(), prefix)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

// parseColumnDefs turns "name=type" pairs into column definitions, raw lines last.
func parseColumnDefs(cols, raw []string) ([]builder.ColumnDef, error) {
	defs := make([]builder.ColumnDef, 0, len(cols)+len(raw))
	for _, c := range cols {
		name, typ, ok := strings.Cut(c, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --col %q: expected name=type", c)
		}
		defs = append(defs, builder.Col(strings.TrimSpace(name), strings.TrimSpace(typ)))
	}
	for _, r := range raw {
		defs = append(defs, builder.Raw(r))
	}
	return defs, nil
}

func init() {
	RootCmd.AddCommand(createTableCmd, dropTableCmd, tablesCmd)

	createTableCmd.Flags().StringArrayVar(&tableCols, "col", nil, "Column as name=type (repeatable, in order)")
	createTableCmd.Flags().StringArrayVar(&tableRaw, "raw", nil, "Literal body line such as a key or constraint (repeatable)")
	createTableCmd.Flags().StringVar(&tableEngine, "engine", "", "Storage engine (default from config)")
	createTableCmd.Flags().StringVar(&tableOptions, "options", "", "Extra table options appended after the charset clause")
	createTableCmd.Flags().BoolVar(&tableNoOptions, "no-options", false, "Omit the ENGINE/CHARSET/COLLATE clause")
	createTableCmd.MarkFlagsMutuallyExclusive("options", "no-options")

	tablesCmd.Flags().StringVar(&tablesPrefix, "prefix", "", "Table name prefix (default from database.table_prefix)")
}
