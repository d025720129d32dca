package model

// TargetProfile holds the goal inputs entered by the user together with
// the derived daily targets. Derived fields are always recomputed from
// the inputs on save; there is exactly one active profile at a time.
type TargetProfile struct {
	Sex          string  `json:"sex"`
	Age          int     `json:"age"`
	HeightIn     float64 `json:"height_in"`
	WeightLb     float64 `json:"weight_lb"`
	Activity     float64 `json:"activity"`
	Surplus      int     `json:"surplus"`
	ProteinPerLb float64 `json:"protein_perlb"`
	FatPerLb     float64 `json:"fat_perlb"`

	Calories int     `json:"calories"`
	ProteinG int     `json:"protein_g"`
	FatG     int     `json:"fat_g"`
	CarbsG   int     `json:"carbs_g"`
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

// FoodRecord is the storage shape of a library food. A record carries
// either per-ounce fields, per-serving fields, or the legacy per-100g
// fields still found in older exports. The JSON keys match the data
// files produced by earlier versions, so old snapshots import cleanly.
type FoodRecord struct {
	Name string `json:"name"`

	KcalPerOz    *int `json:"kcal_per_oz,omitempty"`
	ProteinPerOz *int `json:"p_per_oz,omitempty"`
	CarbsPerOz   *int `json:"c_per_oz,omitempty"`
	FatPerOz     *int `json:"f_per_oz,omitempty"`

	ServingLabel      string `json:"label,omitempty"`
	KcalPerServing    *int   `json:"kcal_s,omitempty"`
	ProteinPerServing *int   `json:"p_s,omitempty"`
	CarbsPerServing   *int   `json:"c_s,omitempty"`
	FatPerServing     *int   `json:"f_s,omitempty"`

	KcalPer100g    *float64 `json:"kcal_per_100g,omitempty"`
	ProteinPer100g *float64 `json:"p_per_100g,omitempty"`
	CarbsPer100g   *float64 `json:"c_per_100g,omitempty"`
	FatPer100g     *float64 `json:"f_per_100g,omitempty"`
}

func PerOunceFood(name string, kcal, proteinG, carbsG, fatG int) FoodRecord {
	return FoodRecord{
		Name:         name,
		KcalPerOz:    &kcal,
		ProteinPerOz: &proteinG,
		CarbsPerOz:   &carbsG,
		FatPerOz:     &fatG,
	}
}

func PerServingFood(name, label string, kcal, proteinG, carbsG, fatG int) FoodRecord {
	return FoodRecord{
		Name:              name,
		ServingLabel:      label,
		KcalPerServing:    &kcal,
		ProteinPerServing: &proteinG,
		CarbsPerServing:   &carbsG,
		FatPerServing:     &fatG,
	}
}

// ConsumedEntry is a snapshot line in a day's ledger. It is fully
// resolved at add time and stays unchanged even if the library record
// it came from is later edited.
type ConsumedEntry struct {
	Name     string `json:"name"`
	Kcal     int    `json:"kcal"`
	ProteinG int    `json:"p"`
	CarbsG   int    `json:"c"`
	FatG     int    `json:"f"`
}

type MacroTotals struct {
	Kcal     int
	ProteinG int
	CarbsG   int
	FatG     int
}

// WeightObservation records body weight for one calendar date; at most
// one observation per date.
type WeightObservation struct {
	Date string  `json:"date"`
	Lb   float64 `json:"lb"`
}

// ReminderConfig lists meal reminder times plus one weekly prep slot.
// PrepDay uses 1=Sunday..7=Saturday.
type ReminderConfig struct {
	Times    []string `json:"times"`
	PrepDay  int      `json:"prepDay"`
	PrepTime string   `json:"prepTime"`
}
