package bb

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"bulkbuddy/internal/model"
	"bulkbuddy/internal/service"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Configure and run meal and prep reminders",
}

var (
	remindTimes    string
	remindPrepDay  int
	remindPrepTime string
)

var remindSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save reminder times and the weekly prep slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := model.ReminderConfig{
			Times:    service.ParseTimes(remindTimes),
			PrepDay:  remindPrepDay,
			PrepTime: remindPrepTime,
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SaveReminderConfig(sqldb, cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reminders saved.")
			return nil
		})
	},
}

var remindShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved reminder configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			cfg, err := service.ReminderSettings(sqldb)
			if err != nil {
				return err
			}
			if cfg == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Reminders: not set (run: bb remind set)")
				return nil
			}
			if len(cfg.Times) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Meal times: none")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Meal times: %s\n", strings.Join(cfg.Times, ", "))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Prep: %s at %s\n", weekdayName(cfg.PrepDay), cfg.PrepTime)
			return nil
		})
	},
}

var remindRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reminder loop in the foreground until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			cfg, err := service.ReminderSettings(sqldb)
			if err != nil {
				return err
			}
			if cfg == nil {
				return fmt.Errorf("no reminders configured (run: bb remind set)")
			}
			sched := service.NewScheduler(consoleNotifier{out: cmd.OutOrStdout()}, service.DefaultTickInterval)
			sched.Start(*cfg)
			defer sched.Stop()
			fmt.Fprintln(cmd.OutOrStdout(), "Reminder loop running. Press Ctrl+C to stop.")

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sig)
			<-sig
			fmt.Fprintln(cmd.OutOrStdout(), "Stopped.")
			return nil
		})
	},
}

type consoleNotifier struct {
	out io.Writer
}

func (n consoleNotifier) Notify(r service.Reminder) {
	fmt.Fprintf(n.out, "[%s] %s: %s\n", r.Kind, r.Title, r.Body)
}

func weekdayName(day int) string {
	names := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	if day < 1 || day > 7 {
		return "unknown"
	}
	return names[day-1]
}

func init() {
	rootCmd.AddCommand(remindCmd)
	remindCmd.AddCommand(remindSetCmd, remindShowCmd, remindRunCmd)

	remindSetCmd.Flags().StringVar(&remindTimes, "times", "", "Comma-separated meal times, e.g. 08:00,12:30,18:00")
	remindSetCmd.Flags().IntVar(&remindPrepDay, "prep-day", 1, "Prep weekday: 1 (Sunday) through 7 (Saturday)")
	remindSetCmd.Flags().StringVar(&remindPrepTime, "prep-time", "16:00", "Prep time HH:MM")
}
