package bb

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "bb",
	Short: "bb tracks bulking calories and macros from your terminal",
	Long:  "bb is a local-first nutrition tracker for bulking: daily macro targets from body metrics, a reusable food library with external lookup, a per-day intake ledger, weight logging, and meal reminders.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
