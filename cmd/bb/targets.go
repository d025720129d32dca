package bb

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"bulkbuddy/internal/model"
	"bulkbuddy/internal/service"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Manage daily calorie and macro targets",
}

var (
	targetSex          string
	targetAge          int
	targetFeet         int
	targetInches       float64
	targetWeightLb     float64
	targetActivity     float64
	targetSurplus      int
	targetProteinPerLb float64
	targetFatPerLb     float64
)

var targetsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Compute and save targets from body metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		if targetSex != "male" && targetSex != "female" {
			return fmt.Errorf("invalid --sex %q (use male or female)", targetSex)
		}
		in := service.TargetInput{
			Sex:          targetSex,
			Age:          targetAge,
			HeightIn:     float64(targetFeet*12) + targetInches,
			WeightLb:     targetWeightLb,
			Activity:     targetActivity,
			Surplus:      targetSurplus,
			ProteinPerLb: targetProteinPerLb,
			FatPerLb:     targetFatPerLb,
		}
		return withDB(func(sqldb *sql.DB) error {
			profile, err := service.SaveTargets(sqldb, in)
			if err != nil {
				return err
			}
			printTargets(cmd, profile)
			return nil
		})
	},
}

var targetsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active target profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			profile, err := service.CurrentTargets(sqldb)
			if err != nil {
				return err
			}
			if profile == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Targets: not set (run: bb targets set)")
				return nil
			}
			printTargets(cmd, *profile)
			return nil
		})
	},
}

func printTargets(cmd *cobra.Command, t model.TargetProfile) {
	fmt.Fprintf(cmd.OutOrStdout(), "Calories: %d kcal\n", t.Calories)
	fmt.Fprintf(cmd.OutOrStdout(), "Macros: P %dg | C %dg | F %dg\n", t.ProteinG, t.CarbsG, t.FatG)
	fmt.Fprintf(cmd.OutOrStdout(), "Body: %.1f cm | %.2f kg\n", t.HeightCm, t.WeightKg)
}

func init() {
	rootCmd.AddCommand(targetsCmd)
	targetsCmd.AddCommand(targetsSetCmd, targetsShowCmd)

	targetsSetCmd.Flags().StringVar(&targetSex, "sex", "", "Sex: male or female")
	targetsSetCmd.Flags().IntVar(&targetAge, "age", 0, "Age in years")
	targetsSetCmd.Flags().IntVar(&targetFeet, "feet", 0, "Height feet component")
	targetsSetCmd.Flags().Float64Var(&targetInches, "inches", 0, "Height inches component")
	targetsSetCmd.Flags().Float64Var(&targetWeightLb, "weight", 0, "Body weight in pounds")
	targetsSetCmd.Flags().Float64Var(&targetActivity, "activity", 1.2, "Activity multiplier (1.2-2.0)")
	targetsSetCmd.Flags().IntVar(&targetSurplus, "surplus", 0, "Caloric surplus (negative for a deficit)")
	targetsSetCmd.Flags().Float64Var(&targetProteinPerLb, "protein-per-lb", 0.9, "Protein grams per pound of bodyweight")
	targetsSetCmd.Flags().Float64Var(&targetFatPerLb, "fat-per-lb", 0.4, "Fat grams per pound of bodyweight")
	_ = targetsSetCmd.MarkFlagRequired("sex")
	_ = targetsSetCmd.MarkFlagRequired("age")
	_ = targetsSetCmd.MarkFlagRequired("weight")
}
