package bb

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"bulkbuddy/internal/model"
	"bulkbuddy/internal/service"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage the reusable food library",
}

var (
	foodName    string
	foodLabel   string
	foodKcal    int
	foodProtein int
	foodCarbs   int
	foodFat     int
)

var foodAddOzCmd = &cobra.Command{
	Use:   "add-oz",
	Short: "Save a food with nutrition per ounce",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := model.PerOunceFood(foodName, foodKcal, foodProtein, foodCarbs, foodFat)
		return withDB(func(sqldb *sql.DB) error {
			if err := service.UpsertFood(sqldb, rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q (per oz)\n", rec.Name)
			return nil
		})
	},
}

var foodAddServingCmd = &cobra.Command{
	Use:   "add-serving",
	Short: "Save a food with nutrition per labeled serving",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := model.PerServingFood(foodName, foodLabel, foodKcal, foodProtein, foodCarbs, foodFat)
		return withDB(func(sqldb *sql.DB) error {
			if err := service.UpsertFood(sqldb, rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q (per serving: %s)\n", rec.Name, rec.ServingLabel)
			return nil
		})
	},
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			foods, err := service.ListFoods(sqldb)
			if err != nil {
				return err
			}
			if len(foods) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No foods saved.")
				return nil
			}
			for _, rec := range foods {
				printFood(cmd, rec)
			}
			return nil
		})
	},
}

var foodShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one library food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			food, err := service.FindFood(sqldb, args[0])
			if err != nil {
				return err
			}
			printFood(cmd, food.Record())
			return nil
		})
	},
}

func printFood(cmd *cobra.Command, rec model.FoodRecord) {
	food, err := service.Normalize(rec)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: unsupported format\n", rec.Name)
		return
	}
	switch food.Shape {
	case service.ShapePerServing:
		label := food.ServingLabel
		if label == "" {
			label = "serving"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d kcal/serv | P %dg C %dg F %dg (%s)\n",
			food.Name, food.Kcal, food.ProteinG, food.CarbsG, food.FatG, label)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d kcal/oz | P %dg C %dg F %dg\n",
			food.Name, food.Kcal, food.ProteinG, food.CarbsG, food.FatG)
	}
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodAddOzCmd, foodAddServingCmd, foodListCmd, foodShowCmd)

	for _, c := range []*cobra.Command{foodAddOzCmd, foodAddServingCmd} {
		c.Flags().StringVar(&foodName, "name", "", "Food name (case-insensitive library key)")
		c.Flags().IntVar(&foodKcal, "kcal", 0, "Calories per unit")
		c.Flags().IntVar(&foodProtein, "protein", 0, "Protein grams per unit")
		c.Flags().IntVar(&foodCarbs, "carbs", 0, "Carb grams per unit")
		c.Flags().IntVar(&foodFat, "fat", 0, "Fat grams per unit")
		_ = c.MarkFlagRequired("name")
		_ = c.MarkFlagRequired("kcal")
	}
	foodAddServingCmd.Flags().StringVar(&foodLabel, "label", "1 serving", "Serving label, e.g. \"1 cup (8 fl oz)\"")
}
