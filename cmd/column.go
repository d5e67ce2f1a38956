package cmd

import (
	"github.com/spf13/cobra"
)

var (
	addFirst  bool
	addAfter  string
	addBefore string

	alterRename string
	alterAfter  string
)

var addColumnCmd = &cobra.Command{
	Use:   "add-column <table> <column> <type>",
	Short: "Add a column, optionally at a given position",
	Example: `  db-ddl add-column users nickname "string(32)" --after email
  db-ddl add-column '{{%entries}}' sortOrder smallint --before title`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, column, typ := args[0], args[1], args[2]

		var (
			sql string
			err error
		)
		switch {
		case addFirst:
			sql, err = app.Builder.AddColumnFirst(table, column, typ)
		case addBefore != "":
			sql, err = app.Builder.AddColumnBefore(cmd.Context(), table, column, typ, addBefore)
		default:
			sql, err = app.Builder.AddColumnAfter(table, column, typ, addAfter)
		}
		if err != nil {
			return err
		}
		return runStatement(cmd, sql, nil, table)
	},
}

var alterColumnCmd = &cobra.Command{
	Use:   "alter-column <table> <column> <type>",
	Short: "Change a column's type, name or position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sql, err := app.Builder.AlterColumn(args[0], args[1], args[2], alterRename, alterAfter)
		if err != nil {
			return err
		}
		return runStatement(cmd, sql, nil, args[0])
	},
}

func init() {
	RootCmd.AddCommand(addColumnCmd, alterColumnCmd)

	addColumnCmd.Flags().BoolVar(&addFirst, "first", false, "Place the column first")
	addColumnCmd.Flags().StringVar(&addAfter, "after", "", "Place the column after this one")
	addColumnCmd.Flags().StringVar(&addBefore, "before", "", "Place the column before this one (looks up the live table)")
	addColumnCmd.MarkFlagsMutuallyExclusive("first", "after", "before")

	alterColumnCmd.Flags().StringVar(&alterRename, "rename", "", "New column name")
	alterColumnCmd.Flags().StringVar(&alterAfter, "after", "", "Move the column after this one")
}
