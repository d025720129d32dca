package bb

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"bulkbuddy/internal/service"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stored data for inconsistencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.CheckIntegrity(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Checked %d keys\n", report.CheckedKeys)
			if report.OK() {
				fmt.Fprintln(cmd.OutOrStdout(), "No problems found.")
				return nil
			}
			for _, p := range report.Problems {
				fmt.Fprintf(cmd.OutOrStdout(), "problem: %s\n", p)
			}
			return fmt.Errorf("found %d problem(s)", len(report.Problems))
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
