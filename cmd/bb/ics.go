package bb

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"bulkbuddy/internal/service"
)

var icsCmd = &cobra.Command{
	Use:   "ics",
	Short: "Export reminder schedules as iCalendar documents",
}

var icsOut string

var icsMealsCmd = &cobra.Command{
	Use:   "meals",
	Short: "Export daily meal reminders as an .ics calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			cfg, err := service.ReminderSettings(sqldb)
			if err != nil {
				return err
			}
			if cfg == nil || len(cfg.Times) == 0 {
				return fmt.Errorf("no meal times configured (run: bb remind set)")
			}
			return writeICS(cmd, service.MealsCalendar(cfg.Times, time.Now()))
		})
	},
}

var icsPrepCmd = &cobra.Command{
	Use:   "prep",
	Short: "Export the weekly prep reminder as an .ics calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			cfg, err := service.ReminderSettings(sqldb)
			if err != nil {
				return err
			}
			if cfg == nil {
				return fmt.Errorf("no reminders configured (run: bb remind set)")
			}
			return writeICS(cmd, service.PrepCalendar(cfg.PrepDay, cfg.PrepTime, time.Now()))
		})
	},
}

func writeICS(cmd *cobra.Command, doc string) error {
	if icsOut == "" {
		fmt.Fprintln(cmd.OutOrStdout(), doc)
		return nil
	}
	if err := os.WriteFile(icsOut, []byte(doc+"\n"), 0o644); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", icsOut)
	return nil
}

func init() {
	rootCmd.AddCommand(icsCmd)
	icsCmd.AddCommand(icsMealsCmd, icsPrepCmd)
	icsCmd.PersistentFlags().StringVar(&icsOut, "out", "", "Output file (default stdout)")
}
