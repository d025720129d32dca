package bb

import (
	"fmt"

	"github.com/spf13/cobra"

	"bulkbuddy/internal/app"
	"bulkbuddy/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local bb database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}

		sqldb, err := store.Open(path)
		if err != nil {
			return err
		}
		defer sqldb.Close()

		if err := store.ApplyMigrations(sqldb); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized bb database at %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
