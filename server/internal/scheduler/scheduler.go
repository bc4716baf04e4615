package scheduler

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/motortwin/motortwin/pkg/types"
	"github.com/motortwin/motortwin/server/internal/compute"
	"github.com/motortwin/motortwin/server/internal/history"
	"github.com/motortwin/motortwin/server/internal/limits"
	"github.com/motortwin/motortwin/server/internal/source"
)

// Subscriber is notified after every evaluation. Calls are made from the
// tick goroutine in registration order while the tick lock is held, so
// implementations must not block or mutate the limit table.
type Subscriber interface {
	OnSnapshot(snap types.Snapshot, violations []compute.Violation)
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(types.Snapshot, []compute.Violation)

// OnSnapshot implements Subscriber.
func (f SubscriberFunc) OnSnapshot(snap types.Snapshot, v []compute.Violation) { f(snap, v) }

// Options configures a Scheduler.
type Options struct {
	Interval     time.Duration // time between ticks; default 2s
	BackfillStep time.Duration // spacing of warm-up readings; default 5s
}

// Scheduler runs the tick loop. Create one with New.
type Scheduler struct {
	table  *limits.Table
	hist   *history.Buffer
	src    source.Source
	rng    *rand.Rand
	opts   Options
	now    func() time.Time // injectable for deterministic tests
	tickMu sync.Mutex       // serialises ticks, warm-up and limit mutations

	mu        sync.RWMutex // guards the fields below
	latest    types.Snapshot
	hasLatest bool
	seq       uint64
	control   types.Control
	subs      []Subscriber
}

// New creates a Scheduler. rng is used only by the estimators; pass a
// seeded source for reproducible runs.
func New(table *limits.Table, hist *history.Buffer, src source.Source, rng *rand.Rand, opts Options) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}
	if opts.BackfillStep <= 0 {
		opts.BackfillStep = 5 * time.Second
	}
	return &Scheduler{
		table:   table,
		hist:    hist,
		src:     src,
		rng:     rng,
		opts:    opts,
		now:     time.Now,
		control: types.Control{Direction: types.Forward},
	}
}

// Subscribe registers sub for every subsequent evaluation.
func (s *Scheduler) Subscribe(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, sub)
}

// Warmup fills the history window with backfilled readings ending at now and
// evaluates the newest one, so a snapshot is available before the first tick.
func (s *Scheduler) Warmup(now time.Time) types.Snapshot {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	s.hist.Reset()
	for _, r := range source.Backfill(s.src, s.hist.Cap(), now, s.opts.BackfillStep) {
		s.hist.Append(r)
	}
	r, _ := s.hist.Latest()
	return s.evaluate(r, now)
}

// Tick draws one reading, appends it to history and evaluates it.
func (s *Scheduler) Tick(now time.Time) types.Snapshot {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	r := s.src.Next(now)
	s.hist.Append(r)
	return s.evaluate(r, now)
}

// evaluate runs the evaluator on r, publishes the snapshot and notifies
// subscribers. Callers hold s.tickMu.
func (s *Scheduler) evaluate(r types.Reading, now time.Time) types.Snapshot {
	res := compute.Evaluate(r, s.table.List(), s.rng)

	s.mu.Lock()
	s.seq++
	snap := types.Snapshot{
		Seq:                s.seq,
		GeneratedAt:        now,
		Reading:            r,
		HealthScore:        res.HealthScore,
		HealthStatus:       res.HealthStatus,
		RUL:                res.RUL,
		FailureProbability: res.FailureProbability,
		Components:         res.Components,
		AlertCount:         res.AlertCount,
		MachineStatus:      res.MachineStatus,
		LoadPercentage:     res.LoadPercentage,
		Control:            s.control,
	}
	s.latest = snap
	s.hasLatest = true
	subs := make([]Subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.OnSnapshot(snap, res.Violations)
	}
	return snap
}

// Run warms up, evaluates immediately, then ticks every Interval until ctx
// is cancelled. Run blocks; the ticker is stopped on return.
func (s *Scheduler) Run(ctx context.Context) {
	snap := s.Warmup(s.now())
	slog.Info("scheduler: warm-up complete",
		"history", s.hist.Len(),
		"health_score", snap.HealthScore,
		"interval", s.opts.Interval.String(),
	)

	t := time.NewTicker(s.opts.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler: stopped", "ticks", s.Seq())
			return
		case now := <-t.C:
			snap := s.Tick(now)
			slog.Debug("scheduler: tick",
				"seq", snap.Seq,
				"health_score", snap.HealthScore,
				"alerts", snap.AlertCount,
			)
		}
	}
}

// Latest returns the most recent snapshot and false before the first
// evaluation.
func (s *Scheduler) Latest() (types.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.hasLatest
}

// Seq returns the number of evaluations performed so far.
func (s *Scheduler) Seq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}

// History returns the history window, oldest first.
func (s *Scheduler) History() []types.Reading {
	return s.hist.Snapshot()
}

// Series returns one parameter's history values and timestamps.
func (s *Scheduler) Series(p types.Parameter) ([]float64, []time.Time) {
	return s.hist.Series(p)
}

// Limits returns the current limit table in canonical order together with
// its revision.
func (s *Scheduler) Limits() ([]types.Limit, string) {
	return s.table.List(), s.table.Revision()
}

// Limit returns the row for p.
func (s *Scheduler) Limit(p types.Parameter) (types.Limit, bool) {
	return s.table.Get(p)
}

// UpdateLimits replaces the limit table. The change applies from the next
// tick; a tick in progress finishes against the old table.
func (s *Scheduler) UpdateLimits(newLimits []types.Limit) string {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	s.table.Update(newLimits)
	slog.Info("scheduler: limits replaced", "rows", len(newLimits), "revision", s.table.Revision())
	return s.table.Revision()
}

// UpdateLimitsIf replaces the limit table only when its revision still equals
// rev. The comparison and the replacement happen under the tick lock, so of
// two writers holding the same revision exactly one succeeds. It returns the
// revision in force afterwards and whether the update was applied.
func (s *Scheduler) UpdateLimitsIf(rev string, newLimits []types.Limit) (string, bool) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	if current := s.table.Revision(); current != rev {
		return current, false
	}
	s.table.Update(newLimits)
	slog.Info("scheduler: limits replaced", "rows", len(newLimits), "revision", s.table.Revision())
	return s.table.Revision(), true
}

// SetLimit replaces the single row for l.Parameter.
func (s *Scheduler) SetLimit(l types.Limit) string {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	s.table.Set(l)
	slog.Info("scheduler: limit updated",
		"parameter", string(l.Parameter),
		"minimum", l.Minimum,
		"maximum", l.Maximum,
	)
	return s.table.Revision()
}

// SetRunning starts or stops the motor. It returns the new control state.
func (s *Scheduler) SetRunning(running bool) types.Control {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.control.Running = running
	return s.control
}

// ToggleDirection reverses the commanded rotation direction.
func (s *Scheduler) ToggleDirection() types.Control {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.control.Direction == types.Reverse {
		s.control.Direction = types.Forward
	} else {
		s.control.Direction = types.Reverse
	}
	return s.control
}

// Control returns the current motor control state.
func (s *Scheduler) Control() types.Control {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.control
}
