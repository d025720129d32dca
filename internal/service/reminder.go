package service

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"bulkbuddy/internal/model"
	"bulkbuddy/internal/store"
)

// DefaultTickInterval bounds missed-trigger risk: reminder times are
// minute-granular, so checking every 20 seconds cannot skip a minute.
const DefaultTickInterval = 20 * time.Second

type ReminderKind string

const (
	ReminderMeal ReminderKind = "meal"
	ReminderPrep ReminderKind = "prep"
)

type Reminder struct {
	Kind  ReminderKind
	Title string
	Body  string
}

// Notifier delivers a fired reminder; the delivery mechanism lives
// outside the scheduler.
type Notifier interface {
	Notify(r Reminder)
}

// ParseTimes splits a comma-separated list of HH:MM values, dropping
// blanks.
func ParseTimes(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SaveReminderConfig validates and persists the reminder settings.
func SaveReminderConfig(db *sql.DB, cfg model.ReminderConfig) error {
	for _, t := range cfg.Times {
		if _, err := time.Parse("15:04", t); err != nil {
			return fmt.Errorf("invalid meal time %q, expected HH:MM", t)
		}
	}
	if cfg.PrepDay < 1 || cfg.PrepDay > 7 {
		return fmt.Errorf("prep day must be 1 (Sunday) through 7 (Saturday)")
	}
	if cfg.PrepTime == "" {
		cfg.PrepTime = "16:00"
	}
	if _, err := time.Parse("15:04", cfg.PrepTime); err != nil {
		return fmt.Errorf("invalid prep time %q, expected HH:MM", cfg.PrepTime)
	}
	return store.Set(db, store.KeyReminders, cfg)
}

// ReminderSettings returns the stored config, or nil when unset.
func ReminderSettings(db *sql.DB) (*model.ReminderConfig, error) {
	var cfg model.ReminderConfig
	found, err := store.Get(db, store.KeyReminders, &cfg)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &cfg, nil
}

// DueReminders reports which reminders match the given instant: any
// configured meal time equal to the current HH:MM, and the weekly prep
// slot when both weekday and HH:MM match. Pure; dedup across ticks is
// the scheduler's job.
func DueReminders(cfg model.ReminderConfig, now time.Time) []Reminder {
	hm := now.Format("15:04")
	var due []Reminder
	for _, t := range cfg.Times {
		if t == hm {
			due = append(due, Reminder{
				Kind:  ReminderMeal,
				Title: "Meal time",
				Body:  "Log your meal and hit your macros.",
			})
			break
		}
	}
	day := int(now.Weekday()) + 1
	if day == cfg.PrepDay && hm == cfg.PrepTime {
		due = append(due, Reminder{
			Kind:  ReminderPrep,
			Title: "Meal prep",
			Body:  "Prep your meals for the week.",
		})
	}
	return due
}

// Scheduler owns the reminder loop lifecycle. Start replaces any
// running loop, Stop is idempotent, and each reminder kind fires at
// most once per calendar minute even though the tick interval is
// sub-minute.
type Scheduler struct {
	notifier Notifier
	interval time.Duration

	mu        sync.Mutex
	stop      chan struct{}
	lastFired map[ReminderKind]string
}

func NewScheduler(n Notifier, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Scheduler{
		notifier:  n,
		interval:  interval,
		lastFired: map[ReminderKind]string{},
	}
}

func (s *Scheduler) Start(cfg model.ReminderConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	stop := make(chan struct{})
	s.stop = stop
	go s.loop(cfg, stop)
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

func (s *Scheduler) stopLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

func (s *Scheduler) loop(cfg model.ReminderConfig, stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.fire(cfg, time.Now())
		}
	}
}

func (s *Scheduler) fire(cfg model.ReminderConfig, now time.Time) {
	minute := now.Format("2006-01-02 15:04")
	for _, r := range DueReminders(cfg, now) {
		s.mu.Lock()
		fired := s.lastFired[r.Kind] == minute
		if !fired {
			s.lastFired[r.Kind] = minute
		}
		s.mu.Unlock()
		if !fired {
			s.notifier.Notify(r)
		}
	}
}
