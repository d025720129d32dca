package service_test

import (
	"strings"
	"testing"
	"time"

	"bulkbuddy/internal/service"
)

func TestMealsCalendar(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)
	doc := service.MealsCalendar([]string{"08:00", "12:30"}, now)

	if !strings.HasPrefix(doc, "BEGIN:VCALENDAR\nVERSION:2.0\n") {
		t.Fatalf("missing calendar header:\n%s", doc)
	}
	if !strings.HasSuffix(doc, "END:VCALENDAR") {
		t.Fatalf("missing calendar footer:\n%s", doc)
	}
	if got := strings.Count(doc, "BEGIN:VEVENT"); got != 2 {
		t.Fatalf("event count = %d, want 2", got)
	}
	if !strings.Contains(doc, "DTSTART:20260302T080000") {
		t.Fatalf("missing 08:00 anchor:\n%s", doc)
	}
	if !strings.Contains(doc, "DTSTART:20260302T123000") {
		t.Fatalf("missing 12:30 anchor:\n%s", doc)
	}
	if got := strings.Count(doc, "RRULE:FREQ=DAILY"); got != 2 {
		t.Fatalf("daily rrule count = %d, want 2", got)
	}
}

func TestMealsCalendarSkipsMalformedTimes(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	doc := service.MealsCalendar([]string{"08:00", "nonsense"}, now)
	if got := strings.Count(doc, "BEGIN:VEVENT"); got != 1 {
		t.Fatalf("event count = %d, want 1", got)
	}
}

func TestPrepCalendarAnchorsNextOccurrence(t *testing.T) {
	t.Parallel()
	// 2026-03-02 is a Monday; prep day 1 is Sunday, so the anchor is
	// the following Sunday 2026-03-08.
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	doc := service.PrepCalendar(1, "16:00", now)
	if !strings.Contains(doc, "DTSTART:20260308T160000") {
		t.Fatalf("wrong anchor:\n%s", doc)
	}
	if !strings.Contains(doc, "RRULE:FREQ=WEEKLY;BYDAY=SU") {
		t.Fatalf("wrong rrule:\n%s", doc)
	}

	// Same weekday anchors today.
	sameDay := service.PrepCalendar(2, "16:00", now)
	if !strings.Contains(sameDay, "DTSTART:20260302T160000") {
		t.Fatalf("same-weekday anchor wrong:\n%s", sameDay)
	}
	if !strings.Contains(sameDay, "BYDAY=MO") {
		t.Fatalf("wrong byday:\n%s", sameDay)
	}
}
