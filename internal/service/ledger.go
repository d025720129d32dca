package service

import (
	"database/sql"
	"fmt"

	"bulkbuddy/internal/model"
	"bulkbuddy/internal/store"
)

// AddEntry appends a resolved entry to the ledger for date (empty date
// means today) and records the date in the active-dates index.
func AddEntry(db *sql.DB, date string, entry model.ConsumedEntry) (string, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return "", err
	}
	key := store.EntryKey(date)
	var entries []model.ConsumedEntry
	if _, err := store.Get(db, key, &entries); err != nil {
		return "", err
	}
	entries = append(entries, entry)
	if err := store.Set(db, key, entries); err != nil {
		return "", err
	}
	if err := ensureDateIndexed(db, date); err != nil {
		return "", err
	}
	return date, nil
}

// RemoveEntry deletes the entry at a positional index within the day's
// sequence. The date stays in the active-dates index even when its last
// entry is removed.
func RemoveEntry(db *sql.DB, date string, index int) error {
	date, err := normalizeDate(date)
	if err != nil {
		return err
	}
	key := store.EntryKey(date)
	var entries []model.ConsumedEntry
	if _, err := store.Get(db, key, &entries); err != nil {
		return err
	}
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("entry index %d out of range for %s (%d entries)", index, date, len(entries))
	}
	entries = append(entries[:index], entries[index+1:]...)
	return store.Set(db, key, entries)
}

// Entries returns the day's ledger in insertion order.
func Entries(db *sql.DB, date string) ([]model.ConsumedEntry, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	var entries []model.ConsumedEntry
	if _, err := store.Get(db, store.EntryKey(date), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Totals folds a day's entries into summed macros. Fields missing from
// a partially-formed entry decode as zero, so they simply do not
// contribute.
func Totals(entries []model.ConsumedEntry) model.MacroTotals {
	var t model.MacroTotals
	for _, e := range entries {
		t.Kcal += e.Kcal
		t.ProteinG += e.ProteinG
		t.CarbsG += e.CarbsG
		t.FatG += e.FatG
	}
	return t
}

// Remaining reports target minus eaten, floored at zero per macro.
func Remaining(profile model.TargetProfile, totals model.MacroTotals) model.MacroTotals {
	return model.MacroTotals{
		Kcal:     floorZero(profile.Calories - totals.Kcal),
		ProteinG: floorZero(profile.ProteinG - totals.ProteinG),
		CarbsG:   floorZero(profile.CarbsG - totals.CarbsG),
		FatG:     floorZero(profile.FatG - totals.FatG),
	}
}

// ActiveDates lists every date that has ever had an entry, most
// recently touched first. Dates are never removed from the index.
func ActiveDates(db *sql.DB) ([]string, error) {
	var dates []string
	if _, err := store.Get(db, store.KeyEntryIndex, &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

func ensureDateIndexed(db *sql.DB, date string) error {
	var dates []string
	if _, err := store.Get(db, store.KeyEntryIndex, &dates); err != nil {
		return err
	}
	for _, d := range dates {
		if d == date {
			return nil
		}
	}
	dates = append([]string{date}, dates...)
	return store.Set(db, store.KeyEntryIndex, dates)
}

func floorZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
