package service

import (
	"database/sql"
	"fmt"
	"math"

	"bulkbuddy/internal/model"
	"bulkbuddy/internal/store"
)

type TargetInput struct {
	Sex          string
	Age          int
	HeightIn     float64
	WeightLb     float64
	Activity     float64
	Surplus      int
	ProteinPerLb float64
	FatPerLb     float64
}

// ComputeTargets derives daily calorie and macro targets from body
// metrics: Mifflin-St Jeor BMR, scaled by the activity multiplier,
// shifted by the caloric surplus, with protein and fat set per pound
// of bodyweight and carbs taking the remaining energy (never below
// zero). Pure: same input always yields the same profile.
func ComputeTargets(in TargetInput) (model.TargetProfile, error) {
	if err := in.validate(); err != nil {
		return model.TargetProfile{}, err
	}
	heightCm := InchToCm(in.HeightIn)
	weightKg := LbToKg(in.WeightLb)
	bmr := mifflinStJeor(in.Sex, in.Age, heightCm, weightKg)
	tdee := int(math.Round(float64(bmr) * in.Activity))
	calories := tdee + in.Surplus
	proteinG := int(math.Round(in.WeightLb * in.ProteinPerLb))
	fatG := int(math.Round(in.WeightLb * in.FatPerLb))
	kcalPF := proteinG*4 + fatG*9
	carbsG := int(math.Round(float64(calories-kcalPF) / 4))
	if carbsG < 0 {
		carbsG = 0
	}
	return model.TargetProfile{
		Sex:          in.Sex,
		Age:          in.Age,
		HeightIn:     in.HeightIn,
		WeightLb:     in.WeightLb,
		Activity:     in.Activity,
		Surplus:      in.Surplus,
		ProteinPerLb: in.ProteinPerLb,
		FatPerLb:     in.FatPerLb,
		Calories:     calories,
		ProteinG:     proteinG,
		FatG:         fatG,
		CarbsG:       carbsG,
		HeightCm:     heightCm,
		WeightKg:     weightKg,
	}, nil
}

func (in TargetInput) validate() error {
	if in.Sex != "male" && in.Sex != "female" {
		return fmt.Errorf("sex must be male or female")
	}
	if in.Age <= 0 {
		return fmt.Errorf("age must be > 0")
	}
	if in.HeightIn <= 0 {
		return fmt.Errorf("height must be > 0")
	}
	if in.WeightLb <= 0 {
		return fmt.Errorf("weight must be > 0")
	}
	if in.Activity <= 0 {
		return fmt.Errorf("activity multiplier must be > 0")
	}
	return nil
}

func mifflinStJeor(sex string, age int, heightCm, weightKg float64) int {
	s := -161.0
	if sex == "male" {
		s = 5
	}
	return int(math.Round(10*weightKg + 6.25*heightCm - 5*float64(age) + s))
}

// SaveTargets recomputes and stores the profile wholesale; there is no
// history, the previous profile is replaced.
func SaveTargets(db *sql.DB, in TargetInput) (model.TargetProfile, error) {
	profile, err := ComputeTargets(in)
	if err != nil {
		return model.TargetProfile{}, err
	}
	if err := store.Set(db, store.KeyTargets, profile); err != nil {
		return model.TargetProfile{}, err
	}
	return profile, nil
}

// CurrentTargets returns the active profile, or nil when none is set.
func CurrentTargets(db *sql.DB) (*model.TargetProfile, error) {
	var profile model.TargetProfile
	found, err := store.Get(db, store.KeyTargets, &profile)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &profile, nil
}
