// Package quota tracks request volume against the metered RAWG API.
//
// The ledger is a single JSON record on disk, loaded at the start of every
// enrichment batch and written back exactly once after the batch completes.
// The whole record is serialized and overwritten on each save; there is no
// append-only log. This is safe for a single-process deployment only.
package quota

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

const (
	dayFormat = "2006-01-02"
	// legacyTimeFormat matches reset timestamps written without a zone offset
	legacyTimeFormat = "2006-01-02T15:04:05"
	resetPeriod      = 30 * 24 * time.Hour
)

// HistoryEntry records a single metered request.
type HistoryEntry struct {
	Timestamp string `json:"timestamp"`
	Title     string `json:"title"`
}

// Record is the durable quota state.
type Record struct {
	Remaining      int            `json:"remaining"`
	TotalRequests  int            `json:"total_requests"`
	ResetTime      string         `json:"reset_time"`
	DailyStats     map[string]int `json:"daily_stats"`
	RequestHistory []HistoryEntry `json:"request_history"`
}

// Ledger owns the on-disk quota record. It is injected into the pipeline so
// tests can point it at a temp file and a fake clock.
type Ledger struct {
	path  string
	limit int
	clock func() time.Time
	mu    sync.Mutex
}

// Option is a functional option for configuring the Ledger.
type Option func(*Ledger)

// WithClock sets a custom time source, used by tests.
func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// NewLedger creates a ledger backed by the given file with the given monthly limit.
func NewLedger(path string, limit int, opts ...Option) *Ledger {
	l := &Ledger{
		path:  path,
		limit: limit,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Limit returns the configured monthly request limit.
func (l *Ledger) Limit() int {
	return l.limit
}

// Load reads the quota record from disk, initializing a fresh record if the
// file does not exist and rolling the period over if the reset time has
// passed. Rollover zeroes the counters, clears daily stats and history, and
// schedules the next reset 30 days out; the reinitialized record is persisted
// immediately.
func (l *Ledger) Load() (*Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLocked()
}

func (l *Ledger) loadLocked() (*Record, error) {
	now := l.clock()

	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		rec := l.freshRecord(now)
		if err := l.saveLocked(rec); err != nil {
			return nil, err
		}
		return rec, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read quota file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse quota file: %w", err)
	}
	if rec.DailyStats == nil {
		rec.DailyStats = make(map[string]int)
	}

	resetTime, err := parseTime(rec.ResetTime)
	if err != nil || !now.Before(resetTime) {
		if err != nil {
			slog.Warn("Unreadable quota reset time, starting a new period", "reset_time", rec.ResetTime, "error", err)
		}
		fresh := l.freshRecord(now)
		if err := l.saveLocked(fresh); err != nil {
			return nil, err
		}
		return fresh, nil
	}

	return &rec, nil
}

// Save persists the record, reconciling the remaining counter against the
// limit so that remaining = limit - total_requests holds after every write.
func (l *Ledger) Save(rec *Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.saveLocked(rec)
}

func (l *Ledger) saveLocked(rec *Record) error {
	rec.Remaining = l.limit - rec.TotalRequests

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to serialize quota record: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write quota file: %w", err)
	}
	return nil
}

func (l *Ledger) freshRecord(now time.Time) *Record {
	return &Record{
		Remaining:      l.limit,
		TotalRequests:  0,
		ResetTime:      now.Add(resetPeriod).Format(time.RFC3339),
		DailyStats:     make(map[string]int),
		RequestHistory: []HistoryEntry{},
	}
}

// RecordRequest counts one metered request against the record. Counts are
// incremented even when the search returned no usable match, because the
// metered call was made regardless.
func (l *Ledger) RecordRequest(rec *Record, title string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	rec.TotalRequests++
	rec.DailyStats[now.Format(dayFormat)]++
	rec.RequestHistory = append(rec.RequestHistory, HistoryEntry{
		Timestamp: now.Format(time.RFC3339),
		Title:     title,
	})
}

// LogUsage emits the usage summary for the current record.
func (l *Ledger) LogUsage(rec *Record) {
	now := l.clock()
	today := now.Format(dayFormat)
	dailyUsage := rec.DailyStats[today]
	dailyBudget := l.limit / 28

	dailyAvg := 0.0
	if len(rec.DailyStats) > 0 {
		total := 0
		for _, count := range rec.DailyStats {
			total += count
		}
		dailyAvg = float64(total) / float64(len(rec.DailyStats))
	}

	monthTotal := MonthlyRequests(rec, now)
	monthlyAvg := float64(monthTotal) / float64(now.Day())

	slog.Info("RAWG API usage",
		"today", dailyUsage,
		"daily_budget", dailyBudget,
		"daily_average", fmt.Sprintf("%.1f", dailyAvg),
		"month_total", monthTotal,
		"monthly_average", fmt.Sprintf("%.1f", monthlyAvg),
		"remaining", rec.Remaining,
		"all_time", rec.TotalRequests,
		"reset_time", rec.ResetTime,
	)
}

// MonthlyRequests sums the daily stats for the calendar month of now.
func MonthlyRequests(rec *Record, now time.Time) int {
	prefix := now.Format("2006-01")
	total := 0
	for date, count := range rec.DailyStats {
		if len(date) >= len(prefix) && date[:len(prefix)] == prefix {
			total += count
		}
	}
	return total
}

func parseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(legacyTimeFormat, value)
}
