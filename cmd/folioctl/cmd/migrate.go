package cmd

import (
	"fmt"

	"folio/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long: `Apply the migrations embedded in the binary, in file name order.
Migrations are idempotent and may be re-run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := database.Migrations()
		if err != nil {
			return err
		}

		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(cmd.Context()); err != nil {
			return err
		}

		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", name)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nAll migrations completed!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
