package cmd

import (
	"github.com/spf13/cobra"
)

var replaceCmd = &cobra.Command{
	Use:     "replace <table> <column> <find> <replace>",
	Short:   "Replace text in every row of a column",
	Example: `  db-ddl replace '{{%content}}' field_body http://old.example https://new.example`,
	Args:    cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		stmt, err := app.Builder.ReplaceInColumn(args[0], args[1], args[2], args[3])
		if err != nil {
			return err
		}
		return runStatement(cmd, stmt.SQL, stmt.Params)
	},
}

func init() {
	RootCmd.AddCommand(replaceCmd)
}
