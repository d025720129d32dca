package service

import (
	"fmt"
	"strings"
	"time"
)

const icsHeader = "BEGIN:VCALENDAR\nVERSION:2.0\nPRODID:-//BulkBuddy//EN\n"

var icsByDay = []string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// MealsCalendar renders a calendar document with one daily-recurring
// event per meal time, anchored to today's occurrences.
func MealsCalendar(times []string, now time.Time) string {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var b strings.Builder
	b.WriteString(icsHeader)
	for _, t := range times {
		parsed, err := time.Parse("15:04", t)
		if err != nil {
			continue
		}
		dt := start.Add(time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute)
		b.WriteString("BEGIN:VEVENT\nSUMMARY:Meal time\nDTSTART:")
		b.WriteString(icsTimestamp(dt))
		b.WriteString("\nRRULE:FREQ=DAILY\nEND:VEVENT\n")
	}
	b.WriteString("END:VCALENDAR")
	return b.String()
}

// PrepCalendar renders a single weekly-recurring prep event anchored to
// the next occurrence of the configured weekday (1=Sunday..7=Saturday).
func PrepCalendar(prepDay int, prepTime string, now time.Time) string {
	if prepTime == "" {
		prepTime = "16:00"
	}
	hour, minute := 16, 0
	if parsed, err := time.Parse("15:04", prepTime); err == nil {
		hour, minute = parsed.Hour(), parsed.Minute()
	}
	today := int(now.Weekday()) + 1
	add := prepDay - today
	if add < 0 {
		add += 7
	}
	dt := time.Date(now.Year(), now.Month(), now.Day()+add, hour, minute, 0, 0, now.Location())
	byday := icsByDay[(prepDay-1+7)%7]
	return icsHeader +
		"BEGIN:VEVENT\nSUMMARY:Meal prep\nDTSTART:" + icsTimestamp(dt) +
		fmt.Sprintf("\nRRULE:FREQ=WEEKLY;BYDAY=%s\nEND:VEVENT\nEND:VCALENDAR", byday)
}

func icsTimestamp(t time.Time) string {
	return t.Format("20060102T150405")
}
