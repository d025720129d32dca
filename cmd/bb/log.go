package bb

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bulkbuddy/internal/model"
	"bulkbuddy/internal/service"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manage the daily intake ledger",
}

var (
	logDate    string
	logAmount  float64
	logUnit    string
	quickName  string
	quickKcal  int
	quickP     int
	quickC     int
	quickF     int
)

var logAddCmd = &cobra.Command{
	Use:   "add <food-name>",
	Short: "Log a library food by amount",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			food, err := service.FindFood(sqldb, args[0])
			if err != nil {
				return err
			}
			entry, err := service.ResolveAmount(food, logUnit, logAmount)
			if err != nil {
				return err
			}
			date, err := service.AddEntry(sqldb, logDate, entry)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on %s: %d kcal | P %dg C %dg F %dg\n",
				entry.Name, date, entry.Kcal, entry.ProteinG, entry.CarbsG, entry.FatG)
			return nil
		})
	},
}

var logQuickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Log raw macros without a library record",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(quickName)
		if name == "" {
			name = "Quick add"
		}
		entry := model.ConsumedEntry{Name: name, Kcal: quickKcal, ProteinG: quickP, CarbsG: quickC, FatG: quickF}
		return withDB(func(sqldb *sql.DB) error {
			date, err := service.AddEntry(sqldb, logDate, entry)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on %s: %d kcal\n", entry.Name, date, entry.Kcal)
			return nil
		})
	},
}

var logRemoveCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Remove an entry by its position in the day (see: bb log show)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return fmt.Errorf("invalid entry index %q", args[0])
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.RemoveEntry(sqldb, logDate, index-1); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %d\n", index)
			return nil
		})
	},
}

var logShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a day's entries, totals, and remaining macros",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			entries, err := service.Entries(sqldb, logDate)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries.")
			}
			for i, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s: %d kcal | P %dg C %dg F %dg\n",
					i+1, e.Name, e.Kcal, e.ProteinG, e.CarbsG, e.FatG)
			}
			totals := service.Totals(entries)
			fmt.Fprintf(cmd.OutOrStdout(), "Eaten: %d kcal | P %dg C %dg F %dg\n",
				totals.Kcal, totals.ProteinG, totals.CarbsG, totals.FatG)

			profile, err := service.CurrentTargets(sqldb)
			if err != nil {
				return err
			}
			if profile == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Targets: not set (run: bb targets set)")
				return nil
			}
			rem := service.Remaining(*profile, totals)
			fmt.Fprintf(cmd.OutOrStdout(), "Remaining: %d kcal | P %dg C %dg F %dg\n",
				rem.Kcal, rem.ProteinG, rem.CarbsG, rem.FatG)
			return nil
		})
	},
}

var logDaysCmd = &cobra.Command{
	Use:   "days",
	Short: "List logged days with their totals, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			dates, err := service.ActiveDates(sqldb)
			if err != nil {
				return err
			}
			if len(dates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No days yet.")
				return nil
			}
			for _, d := range dates {
				entries, err := service.Entries(sqldb, d)
				if err != nil {
					return err
				}
				t := service.Totals(entries)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d kcal (P %dg C %dg F %dg)\n",
					d, t.Kcal, t.ProteinG, t.CarbsG, t.FatG)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logAddCmd, logQuickCmd, logRemoveCmd, logShowCmd, logDaysCmd)

	for _, c := range []*cobra.Command{logAddCmd, logQuickCmd, logRemoveCmd, logShowCmd} {
		c.Flags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD (default today)")
	}
	logAddCmd.Flags().Float64Var(&logAmount, "amount", 0, "Amount in the chosen unit")
	logAddCmd.Flags().StringVar(&logUnit, "unit", "oz", "Unit: oz or serving")
	_ = logAddCmd.MarkFlagRequired("amount")

	logQuickCmd.Flags().StringVar(&quickName, "name", "", "Entry name (default \"Quick add\")")
	logQuickCmd.Flags().IntVar(&quickKcal, "kcal", 0, "Calories")
	logQuickCmd.Flags().IntVar(&quickP, "protein", 0, "Protein grams")
	logQuickCmd.Flags().IntVar(&quickC, "carbs", 0, "Carb grams")
	logQuickCmd.Flags().IntVar(&quickF, "fat", 0, "Fat grams")
}
