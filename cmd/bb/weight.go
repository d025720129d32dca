package bb

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"bulkbuddy/internal/service"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Track body weight",
}

var (
	weightDate string
	weightLb   float64
)

var weightAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record body weight for a date (overwrites the same date)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			date, err := service.RecordWeight(sqldb, weightDate, weightLb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %.1f lb on %s\n", weightLb, date)
			return nil
		})
	},
}

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weight observations by date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			weights, err := service.ListWeights(sqldb)
			if err != nil {
				return err
			}
			if len(weights) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No weights yet.")
				return nil
			}
			for _, w := range weights {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %.1f lb\n", w.Date, w.Lb)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightAddCmd, weightListCmd)

	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "Date YYYY-MM-DD (default today)")
	weightAddCmd.Flags().Float64Var(&weightLb, "lb", 0, "Body weight in pounds")
	_ = weightAddCmd.MarkFlagRequired("lb")
}
