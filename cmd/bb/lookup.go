package bb

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"bulkbuddy/internal/model"
	"bulkbuddy/internal/provider/openfoodfacts"
	"bulkbuddy/internal/service"
)

var (
	lookupLimit  int
	lookupRegion string
	lookupSave   int
	lookupAs     string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <query>",
	Short: "Search Open Food Facts and optionally save a result to the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &openfoodfacts.Client{Region: lookupRegion}
		products, err := client.SearchFoods(cmd.Context(), args[0], lookupLimit)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No results.")
			return nil
		}
		for i, p := range products {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, p.Title())
			if p.HasPer100g() {
				fmt.Fprintf(cmd.OutOrStdout(), "   per 100g: %.0f kcal | P %.1fg C %.1fg F %.1fg\n",
					p.Per100g.Kcal, p.Per100g.ProteinG, p.Per100g.CarbsG, p.Per100g.FatG)
			}
			if p.HasPerServing() {
				label := p.ServingSize
				if label == "" {
					label = "1 serving"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "   per serving (%s): %.0f kcal | P %.1fg C %.1fg F %.1fg\n",
					label, p.PerServing.Kcal, p.PerServing.ProteinG, p.PerServing.CarbsG, p.PerServing.FatG)
			}
		}

		if lookupSave == 0 {
			return nil
		}
		if lookupSave < 1 || lookupSave > len(products) {
			return fmt.Errorf("--save index %d out of range 1-%d", lookupSave, len(products))
		}
		rec, err := recordFromProduct(products[lookupSave-1], lookupAs)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.UpsertFood(sqldb, rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q to the library\n", rec.Name)
			return nil
		})
	},
}

func recordFromProduct(p openfoodfacts.Product, as string) (model.FoodRecord, error) {
	switch as {
	case "oz":
		if !p.HasPer100g() {
			return model.FoodRecord{}, fmt.Errorf("%q has no per-100g nutrition", p.Title())
		}
		return service.PerOunceFromPer100g(p.Title(),
			p.Per100g.Kcal, p.Per100g.ProteinG, p.Per100g.CarbsG, p.Per100g.FatG), nil
	case "serving":
		if !p.HasPerServing() {
			return model.FoodRecord{}, fmt.Errorf("%q has no per-serving nutrition", p.Title())
		}
		label := p.ServingSize
		if label == "" {
			label = "1 serving"
		}
		return model.PerServingFood(p.Title(), label,
			int(math.Round(p.PerServing.Kcal)),
			int(math.Round(p.PerServing.ProteinG)),
			int(math.Round(p.PerServing.CarbsG)),
			int(math.Round(p.PerServing.FatG)),
		), nil
	default:
		return model.FoodRecord{}, fmt.Errorf("invalid --as %q (use oz or serving)", as)
	}
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().IntVar(&lookupLimit, "limit", 10, "Maximum results to show")
	lookupCmd.Flags().StringVar(&lookupRegion, "region", openfoodfacts.DefaultRegion, "Region tag filter")
	lookupCmd.Flags().IntVar(&lookupSave, "save", 0, "Save result N to the library")
	lookupCmd.Flags().StringVar(&lookupAs, "as", "oz", "Shape to save as: oz or serving")
}
