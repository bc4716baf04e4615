package maintenance

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrInvalid is wrapped by every validation error returned from Add.
var ErrInvalid = errors.New("invalid maintenance record")

// Record is one completed maintenance action.
type Record struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	IssueType       string    `json:"issue_type"`
	ActionTaken     string    `json:"action_taken"`
	Component       string    `json:"component"`
	DowntimeMinutes int       `json:"downtime_minutes"`
}

// Log is a thread-safe append-only maintenance log.
type Log struct {
	mu      sync.RWMutex
	records []Record
	now     func() time.Time
	newID   func() string
}

// New creates a Log holding seed. Seed records without an ID are assigned one.
func New(seed []Record) *Log {
	l := &Log{now: time.Now, newID: uuid.NewString}
	for _, r := range seed {
		if r.ID == "" {
			r.ID = l.newID()
		}
		l.records = append(l.records, r)
	}
	return l
}

// Add validates r, assigns it an ID and appends it. A zero Date is set to
// the current day.
func (l *Log) Add(r Record) (Record, error) {
	r.IssueType = strings.TrimSpace(r.IssueType)
	r.ActionTaken = strings.TrimSpace(r.ActionTaken)
	r.Component = strings.TrimSpace(r.Component)

	switch {
	case r.IssueType == "":
		return Record{}, fmt.Errorf("%w: issue_type is required", ErrInvalid)
	case r.ActionTaken == "":
		return Record{}, fmt.Errorf("%w: action_taken is required", ErrInvalid)
	case r.Component == "":
		return Record{}, fmt.Errorf("%w: component is required", ErrInvalid)
	case r.DowntimeMinutes < 0:
		return Record{}, fmt.Errorf("%w: downtime_minutes must not be negative", ErrInvalid)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if r.Date.IsZero() {
		r.Date = l.now().UTC().Truncate(24 * time.Hour)
	}
	r.ID = l.newID()
	l.records = append(l.records, r)
	return r, nil
}

// List returns a copy of the log, newest first. Records on the same date
// keep insertion order, latest insert first.
func (l *Log) List() []Record {
	l.mu.RLock()
	out := make([]Record, len(l.records))
	for i, r := range l.records {
		out[len(out)-1-i] = r
	}
	l.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Len returns the number of records.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// TotalDowntime returns the summed downtime of every record.
func (l *Log) TotalDowntime() time.Duration {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var total int
	for _, r := range l.records {
		total += r.DowntimeMinutes
	}
	return time.Duration(total) * time.Minute
}

// ParetoEntry is one bar of the Pareto chart.
type ParetoEntry struct {
	Cause      string `json:"cause"`
	Count      int    `json:"count"`
	Cumulative int    `json:"cumulative"` // cumulative share in percent
}

// Pareto groups the log by issue type, most frequent first, with the
// running share of all records. Ties are broken alphabetically.
func (l *Log) Pareto() []ParetoEntry {
	l.mu.RLock()
	counts := make(map[string]int)
	for _, r := range l.records {
		counts[r.IssueType]++
	}
	total := len(l.records)
	l.mu.RUnlock()

	out := make([]ParetoEntry, 0, len(counts))
	for cause, n := range counts {
		out = append(out, ParetoEntry{Cause: cause, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Cause < out[j].Cause
	})

	running := 0
	for i := range out {
		running += out[i].Count
		out[i].Cumulative = int(math.Round(float64(running) / float64(total) * 100))
	}
	return out
}
