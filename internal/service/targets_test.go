package service_test

import (
	"testing"

	"bulkbuddy/internal/service"
)

func TestComputeTargetsMaleExample(t *testing.T) {
	t.Parallel()
	profile, err := service.ComputeTargets(service.TargetInput{
		Sex:          "male",
		Age:          30,
		HeightIn:     70,
		WeightLb:     180,
		Activity:     1.5,
		Surplus:      300,
		ProteinPerLb: 1.0,
		FatPerLb:     0.4,
	})
	if err != nil {
		t.Fatalf("compute targets: %v", err)
	}
	if got, want := profile.HeightCm, 177.8; got < want-0.01 || got > want+0.01 {
		t.Fatalf("height cm = %v, want %v", got, want)
	}
	if got := profile.WeightKg; got < 81.64 || got > 81.66 {
		t.Fatalf("weight kg = %v, want ~81.65", got)
	}
	if profile.Calories != 2975 {
		t.Fatalf("calories = %d, want 2975", profile.Calories)
	}
	if profile.ProteinG != 180 {
		t.Fatalf("protein = %d, want 180", profile.ProteinG)
	}
	if profile.FatG != 72 {
		t.Fatalf("fat = %d, want 72", profile.FatG)
	}
	if profile.CarbsG != 402 {
		t.Fatalf("carbs = %d, want 402", profile.CarbsG)
	}
}

func TestComputeTargetsFemaleOffset(t *testing.T) {
	t.Parallel()
	male, err := service.ComputeTargets(service.TargetInput{
		Sex: "male", Age: 30, HeightIn: 65, WeightLb: 140,
		Activity: 1.2, ProteinPerLb: 0.9, FatPerLb: 0.4,
	})
	if err != nil {
		t.Fatalf("compute male: %v", err)
	}
	female, err := service.ComputeTargets(service.TargetInput{
		Sex: "female", Age: 30, HeightIn: 65, WeightLb: 140,
		Activity: 1.2, ProteinPerLb: 0.9, FatPerLb: 0.4,
	})
	if err != nil {
		t.Fatalf("compute female: %v", err)
	}
	if female.Calories >= male.Calories {
		t.Fatalf("female calories %d should be below male %d", female.Calories, male.Calories)
	}
}

func TestComputeTargetsClampsCarbsAtZero(t *testing.T) {
	t.Parallel()
	// Extreme protein and fat coefficients push the carb remainder
	// negative; it must clamp to zero instead.
	profile, err := service.ComputeTargets(service.TargetInput{
		Sex: "female", Age: 60, HeightIn: 60, WeightLb: 110,
		Activity: 1.2, Surplus: -500, ProteinPerLb: 3.0, FatPerLb: 2.0,
	})
	if err != nil {
		t.Fatalf("compute targets: %v", err)
	}
	if profile.CarbsG != 0 {
		t.Fatalf("carbs = %d, want 0", profile.CarbsG)
	}
}

func TestComputeTargetsRejectsBadInput(t *testing.T) {
	t.Parallel()
	cases := []service.TargetInput{
		{Sex: "other", Age: 25, HeightIn: 70, WeightLb: 180, Activity: 1.5},
		{Sex: "male", Age: 0, HeightIn: 70, WeightLb: 180, Activity: 1.5},
		{Sex: "male", Age: 25, HeightIn: 0, WeightLb: 180, Activity: 1.5},
		{Sex: "male", Age: 25, HeightIn: 70, WeightLb: 0, Activity: 1.5},
		{Sex: "male", Age: 25, HeightIn: 70, WeightLb: 180, Activity: 0},
	}
	for _, in := range cases {
		if _, err := service.ComputeTargets(in); err == nil {
			t.Fatalf("expected error for input %+v", in)
		}
	}
}

func TestSaveAndCurrentTargets(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	current, err := service.CurrentTargets(db)
	if err != nil {
		t.Fatalf("current targets: %v", err)
	}
	if current != nil {
		t.Fatalf("expected nil profile before set, got %+v", current)
	}

	saved, err := service.SaveTargets(db, service.TargetInput{
		Sex: "male", Age: 25, HeightIn: 70, WeightLb: 180,
		Activity: 1.5, Surplus: 300, ProteinPerLb: 1.0, FatPerLb: 0.4,
	})
	if err != nil {
		t.Fatalf("save targets: %v", err)
	}

	current, err = service.CurrentTargets(db)
	if err != nil {
		t.Fatalf("current targets after save: %v", err)
	}
	if current == nil || current.Calories != saved.Calories || current.ProteinG != saved.ProteinG {
		t.Fatalf("stored profile %+v does not match saved %+v", current, saved)
	}
}
