package service

import (
	"fmt"
	"strings"
	"time"
)

// DateKey formats a time as the calendar-date string used for ledger
// keys and weight observations. Dates in this form sort the same
// lexicographically and chronologically.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func normalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DateKey(time.Now()), nil
	}
	if _, err := time.ParseInLocation("2006-01-02", value, time.Local); err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return value, nil
}
