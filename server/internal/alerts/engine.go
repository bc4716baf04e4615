package alerts

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/motortwin/motortwin/pkg/types"
	"github.com/motortwin/motortwin/server/internal/compute"
	"github.com/motortwin/motortwin/server/internal/config"
)

const (
	defaultCooldown   = time.Minute
	maxHistoryLen     = 200
	recentWindowHours = 1

	// criticalOvershoot is the breach distance, as a fraction of the limit
	// range, beyond which a limit alert is critical rather than a warning.
	criticalOvershoot = 0.1
)

// Alert states and kinds.
const (
	StateFiring   = "firing"
	StateResolved = "resolved"

	KindLimit = "limit"
	KindRule  = "rule"
)

// Alert represents a single alert event.
type Alert struct {
	ID         string     `json:"id"`
	Key        string     `json:"key"`
	Kind       string     `json:"kind"` // "limit" | "rule"
	Name       string     `json:"name"` // parameter or rule name
	Severity   string     `json:"severity"`
	Message    string     `json:"message"`
	Value      float64    `json:"value"`
	Threshold  float64    `json:"threshold,omitempty"`
	Seq        uint64     `json:"seq"`
	FiredAt    time.Time  `json:"fired_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	State      string     `json:"state"` // "firing" | "resolved"
}

// candidate is a condition that holds on the current tick.
type candidate struct {
	key, kind, name, severity, message string
	value, threshold                   float64
}

// Engine tracks alert state across ticks and delivers webhook notifications
// when alerts fire or resolve.
//
// Engine is safe for concurrent use.
type Engine struct {
	rules    []config.AlertRule
	webhooks []config.WebhookConfig
	cooldown time.Duration

	now   func() time.Time // injectable for deterministic tests
	newID func() string

	mu        sync.Mutex
	active    map[string]*Alert    // key: "limit:<parameter>" or "rule:<name>"
	lastFire  map[string]time.Time // last fire time per key (for cooldown)
	history   []*Alert             // recently resolved alerts
	listeners []func(Alert)

	client *http.Client
	wg     sync.WaitGroup // in-flight webhook deliveries
}

// New creates an Engine from the alert configuration.
func New(cfg config.AlertsConfig) *Engine {
	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	return &Engine{
		rules:    cfg.Rules,
		webhooks: cfg.Webhooks,
		cooldown: cooldown,
		now:      time.Now,
		newID:    uuid.NewString,
		active:   make(map[string]*Alert),
		lastFire: make(map[string]time.Time),
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// OnAlert registers fn to be called with a copy of every fired or resolved
// alert. fn runs synchronously on the evaluating goroutine.
func (e *Engine) OnAlert(fn func(Alert)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// OnSnapshot implements scheduler.Subscriber.
func (e *Engine) OnSnapshot(snap types.Snapshot, violations []compute.Violation) {
	e.Evaluate(snap, violations)
}

// Evaluate fires an alert for every violation and every rule that holds on
// snap, and resolves active alerts whose condition no longer holds.
// Re-fires of the same key within the cooldown are suppressed.
func (e *Engine) Evaluate(snap types.Snapshot, violations []compute.Violation) {
	now := e.now()

	current := make(map[string]candidate, len(violations)+len(e.rules))
	order := make([]string, 0, len(violations)+len(e.rules))
	add := func(c candidate) {
		if _, dup := current[c.key]; !dup {
			order = append(order, c.key)
		}
		current[c.key] = c
	}
	for _, v := range violations {
		add(limitCandidate(v))
	}
	for _, rule := range e.rules {
		if fires, value := evalCondition(rule.Condition, snap); fires {
			add(ruleCandidate(rule, value))
		}
	}

	var changed []Alert

	e.mu.Lock()
	for _, key := range order {
		c := current[key]
		if _, ok := e.active[key]; ok {
			continue
		}
		if last, ok := e.lastFire[key]; ok && now.Sub(last) < e.cooldown {
			continue
		}
		a := &Alert{
			ID:        e.newID(),
			Key:       key,
			Kind:      c.kind,
			Name:      c.name,
			Severity:  c.severity,
			Message:   c.message,
			Value:     c.value,
			Threshold: c.threshold,
			Seq:       snap.Seq,
			FiredAt:   now,
			State:     StateFiring,
		}
		e.active[key] = a
		e.lastFire[key] = now
		changed = append(changed, *a)
	}

	resolvedKeys := make([]string, 0)
	for key := range e.active {
		if _, still := current[key]; !still {
			resolvedKeys = append(resolvedKeys, key)
		}
	}
	sort.Strings(resolvedKeys)
	for _, key := range resolvedKeys {
		a := e.active[key]
		resolved := now
		a.State = StateResolved
		a.ResolvedAt = &resolved
		delete(e.active, key)

		e.history = append(e.history, a)
		if len(e.history) > maxHistoryLen {
			e.history = e.history[len(e.history)-maxHistoryLen:]
		}
		changed = append(changed, *a)
	}
	listeners := make([]func(Alert), len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()

	for i := range changed {
		a := changed[i]
		if a.State == StateFiring {
			slog.Warn("alerts: fired",
				"key", a.Key,
				"value", a.Value,
				"severity", a.Severity,
			)
		} else {
			slog.Info("alerts: resolved", "key", a.Key)
		}
		for _, fn := range listeners {
			fn(a)
		}
		if len(e.webhooks) > 0 {
			e.wg.Add(1)
			go func() {
				defer e.wg.Done()
				e.deliver(&a)
			}()
		}
	}
}

// Active returns copies of all currently firing alerts plus any alerts
// resolved within the past hour, newest first.
func (e *Engine) Active() []*Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := e.now().Add(-recentWindowHours * time.Hour)
	out := make([]*Alert, 0, len(e.active))

	for _, a := range e.active {
		cp := *a
		out = append(out, &cp)
	}
	for _, a := range e.history {
		if a.ResolvedAt != nil && a.ResolvedAt.After(cutoff) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].FiredAt.Equal(out[j].FiredAt) {
			return out[i].FiredAt.After(out[j].FiredAt)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// FiringCount returns the number of alerts currently firing.
func (e *Engine) FiringCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.active)
}

// Wait blocks until every in-flight webhook delivery has finished.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// limitCandidate describes a limit breach. The threshold is the bound that
// was crossed.
func limitCandidate(v compute.Violation) candidate {
	l := v.Limit
	threshold, dir := l.Minimum, "below"
	if v.Above() {
		threshold, dir = l.Maximum, "above"
	}

	severity := "warning"
	if span := l.Maximum - l.Minimum; span <= 0 || math.Abs(v.Value-threshold) > span*criticalOvershoot {
		severity = "critical"
	}

	label := l.Description
	if label == "" {
		label = string(l.Parameter)
	}
	return candidate{
		key:       KindLimit + ":" + string(l.Parameter),
		kind:      KindLimit,
		name:      string(l.Parameter),
		severity:  severity,
		message:   fmt.Sprintf("%s %.2f%s is %s limit %.2f%s", label, v.Value, l.Unit, dir, threshold, l.Unit),
		value:     v.Value,
		threshold: threshold,
	}
}

func ruleCandidate(rule config.AlertRule, value float64) candidate {
	sev := rule.Severity
	if sev == "" {
		sev = "warning"
	}
	return candidate{
		key:      KindRule + ":" + rule.Name,
		kind:     KindRule,
		name:     rule.Name,
		severity: sev,
		message:  fmt.Sprintf("%s: %s (value %.2f)", rule.Name, rule.Condition, value),
		value:    value,
	}
}
