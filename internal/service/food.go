package service

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"bulkbuddy/internal/model"
	"bulkbuddy/internal/store"
)

var (
	ErrFoodNotFound      = errors.New("food not found in library")
	ErrUnsupportedFormat = errors.New("food record has unsupported format")
	ErrUnsupportedUnit   = errors.New("unit not supported for this food")
)

type FoodShape string

const (
	ShapePerOunce   FoodShape = "per-oz"
	ShapePerServing FoodShape = "per-serving"
)

const (
	UnitOunce   = "oz"
	UnitServing = "serving"
)

// CanonicalFood is a library record reduced to exactly one of the two
// supported shapes: nutrition per one ounce, or per one labeled
// serving.
type CanonicalFood struct {
	Name         string
	Shape        FoodShape
	Kcal         int
	ProteinG     int
	CarbsG       int
	FatG         int
	ServingLabel string
}

// Normalize reduces a stored record to canonical form. Records already
// in per-ounce or per-serving shape pass through unchanged; legacy
// per-100g records are converted to per-ounce on every read (they are
// never rewritten in storage). Anything else is unsupported.
func Normalize(rec model.FoodRecord) (CanonicalFood, error) {
	switch {
	case rec.KcalPerOz != nil:
		return CanonicalFood{
			Name:     rec.Name,
			Shape:    ShapePerOunce,
			Kcal:     *rec.KcalPerOz,
			ProteinG: intOrZero(rec.ProteinPerOz),
			CarbsG:   intOrZero(rec.CarbsPerOz),
			FatG:     intOrZero(rec.FatPerOz),
		}, nil
	case rec.KcalPerServing != nil:
		return CanonicalFood{
			Name:         rec.Name,
			Shape:        ShapePerServing,
			Kcal:         *rec.KcalPerServing,
			ProteinG:     intOrZero(rec.ProteinPerServing),
			CarbsG:       intOrZero(rec.CarbsPerServing),
			FatG:         intOrZero(rec.FatPerServing),
			ServingLabel: rec.ServingLabel,
		}, nil
	case rec.KcalPer100g != nil:
		return CanonicalFood{
			Name:     rec.Name,
			Shape:    ShapePerOunce,
			Kcal:     roundPer100g(*rec.KcalPer100g),
			ProteinG: roundPer100g(floatOrZero(rec.ProteinPer100g)),
			CarbsG:   roundPer100g(floatOrZero(rec.CarbsPer100g)),
			FatG:     roundPer100g(floatOrZero(rec.FatPer100g)),
		}, nil
	default:
		return CanonicalFood{}, fmt.Errorf("%q: %w", rec.Name, ErrUnsupportedFormat)
	}
}

// Record converts back to the storage shape. Normalize(c.Record())
// returns c, so normalization is idempotent.
func (c CanonicalFood) Record() model.FoodRecord {
	if c.Shape == ShapePerServing {
		return model.PerServingFood(c.Name, c.ServingLabel, c.Kcal, c.ProteinG, c.CarbsG, c.FatG)
	}
	return model.PerOunceFood(c.Name, c.Kcal, c.ProteinG, c.CarbsG, c.FatG)
}

// ResolveAmount scales a canonical record by a user-entered amount into
// a ledger entry snapshot. The unit must match the record's shape.
// Serving entries carry the serving label in the display name.
func ResolveAmount(food CanonicalFood, unit string, amount float64) (model.ConsumedEntry, error) {
	if amount <= 0 {
		return model.ConsumedEntry{}, fmt.Errorf("amount must be > 0")
	}
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case UnitOunce:
		if food.Shape != ShapePerOunce {
			return model.ConsumedEntry{}, fmt.Errorf("%q has no per-ounce data: %w", food.Name, ErrUnsupportedUnit)
		}
		return model.ConsumedEntry{
			Name:     food.Name,
			Kcal:     scale(food.Kcal, amount),
			ProteinG: scale(food.ProteinG, amount),
			CarbsG:   scale(food.CarbsG, amount),
			FatG:     scale(food.FatG, amount),
		}, nil
	case UnitServing:
		if food.Shape != ShapePerServing {
			return model.ConsumedEntry{}, fmt.Errorf("%q has no per-serving data: %w", food.Name, ErrUnsupportedUnit)
		}
		name := food.Name
		if food.ServingLabel != "" {
			name = fmt.Sprintf("%s (%s)", food.Name, food.ServingLabel)
		}
		return model.ConsumedEntry{
			Name:     name,
			Kcal:     scale(food.Kcal, amount),
			ProteinG: scale(food.ProteinG, amount),
			CarbsG:   scale(food.CarbsG, amount),
			FatG:     scale(food.FatG, amount),
		}, nil
	default:
		return model.ConsumedEntry{}, fmt.Errorf("unit %q: %w", unit, ErrUnsupportedUnit)
	}
}

// UpsertFood inserts or replaces a library record. Matching is by
// case-insensitive name; a match replaces the record in place so the
// list keeps its order, otherwise the record is appended.
func UpsertFood(db *sql.DB, rec model.FoodRecord) error {
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		return fmt.Errorf("food name is required")
	}
	var foods []model.FoodRecord
	if _, err := store.Get(db, store.KeyFoods, &foods); err != nil {
		return err
	}
	replaced := false
	for i := range foods {
		if strings.EqualFold(foods[i].Name, rec.Name) {
			foods[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		foods = append(foods, rec)
	}
	return store.Set(db, store.KeyFoods, foods)
}

// ListFoods returns the stored library records in list order.
func ListFoods(db *sql.DB) ([]model.FoodRecord, error) {
	var foods []model.FoodRecord
	if _, err := store.Get(db, store.KeyFoods, &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

// FindFood resolves a library record by case-insensitive name and
// normalizes it.
func FindFood(db *sql.DB, name string) (CanonicalFood, error) {
	name = strings.TrimSpace(name)
	foods, err := ListFoods(db)
	if err != nil {
		return CanonicalFood{}, err
	}
	for _, rec := range foods {
		if strings.EqualFold(rec.Name, name) {
			return Normalize(rec)
		}
	}
	return CanonicalFood{}, fmt.Errorf("%q: %w", name, ErrFoodNotFound)
}

// PerOunceFromPer100g builds a per-ounce library record from nutrition
// reported per 100 grams, the shape external lookups return.
func PerOunceFromPer100g(name string, kcal, proteinG, carbsG, fatG float64) model.FoodRecord {
	return model.PerOunceFood(name,
		roundPer100g(kcal),
		roundPer100g(proteinG),
		roundPer100g(carbsG),
		roundPer100g(fatG),
	)
}

func roundPer100g(v float64) int {
	return int(math.Round(v * OzPer100g))
}

func scale(perUnit int, amount float64) int {
	return int(math.Round(float64(perUnit) * amount))
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
