package service

import (
	"database/sql"
	"fmt"
	"sort"

	"bulkbuddy/internal/model"
	"bulkbuddy/internal/store"
)

// RecordWeight upserts a body-weight observation for a date (empty
// date means today); a later save for the same date overwrites.
func RecordWeight(db *sql.DB, date string, lb float64) (string, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return "", err
	}
	if lb <= 0 {
		return "", fmt.Errorf("weight must be > 0")
	}
	var weights []model.WeightObservation
	if _, err := store.Get(db, store.KeyWeights, &weights); err != nil {
		return "", err
	}
	updated := false
	for i := range weights {
		if weights[i].Date == date {
			weights[i].Lb = lb
			updated = true
			break
		}
	}
	if !updated {
		weights = append(weights, model.WeightObservation{Date: date, Lb: lb})
	}
	if err := store.Set(db, store.KeyWeights, weights); err != nil {
		return "", err
	}
	return date, nil
}

// ListWeights returns observations ordered by date ascending.
func ListWeights(db *sql.DB) ([]model.WeightObservation, error) {
	var weights []model.WeightObservation
	if _, err := store.Get(db, store.KeyWeights, &weights); err != nil {
		return nil, err
	}
	sort.Slice(weights, func(i, j int) bool { return weights[i].Date < weights[j].Date })
	return weights, nil
}
