package api

import (
	"fmt"
	"math"
	"sort"

	"github.com/motortwin/motortwin/pkg/types"
	"github.com/motortwin/motortwin/server/internal/compute"
)

// Diagnostic levels, most severe first.
const (
	levelCritical = "critical"
	levelWarning  = "warning"
	levelInfo     = "info"
	levelOK       = "ok"
)

// Thresholds for the advisory hints. None of them affect the health score.
const (
	lowRULDays             = 60
	highFailureProbability = 40.0
	highWifiLatencyMs      = 40.0
	rpmDisagreement        = 25.0
	lowEfficiencyPct       = 90.0
)

// DiagnosticHint is one human-readable insight about the motor's condition.
// The UI displays these as chips next to the health gauge; clicking one shows
// Detail in plain English.
type DiagnosticHint struct {
	// Key is a stable machine-readable identifier (used for dedup/ordering).
	Key string `json:"key"`
	// Level is "ok" | "info" | "warning" | "critical"
	Level string `json:"level"`
	// Title is a short label shown on the chip (≤ 5 words).
	Title string `json:"title"`
	// Detail is the full explanation shown on click/hover.
	Detail string `json:"detail"`
	// Value is an optional numeric value associated with this hint.
	Value *float64 `json:"value,omitempty"`
}

// computeDiagnostics derives diagnostic hints from a snapshot and the limit
// table it was evaluated against. Hints are ordered critical first, then
// warnings, then info.
func computeDiagnostics(snap types.Snapshot, limits []types.Limit) []DiagnosticHint {
	var hints []DiagnosticHint
	r := snap.Reading

	// ── Limit breaches ───────────────────────────────────────────────────────
	for _, v := range compute.Violations(r, limits) {
		hints = append(hints, violationHint(v))
	}

	// ── Overall health ───────────────────────────────────────────────────────
	switch snap.HealthStatus {
	case types.StatusCritical, types.StatusWarning:
		score := float64(snap.HealthScore)
		level := levelWarning
		if snap.HealthStatus == types.StatusCritical {
			level = levelCritical
		}
		hints = append(hints, DiagnosticHint{
			Key:   "health_score",
			Level: level,
			Title: fmt.Sprintf("Health %d/100", snap.HealthScore),
			Detail: fmt.Sprintf(
				"The overall health score is %d out of 100. "+
					"Each monitored parameter that is out of bounds costs 15 points, "+
					"and one running close to a bound costs 5. "+
					"Bring the flagged parameters back towards the middle of their range to recover.",
				snap.HealthScore,
			),
			Value: &score,
		})
	}

	// ── Component warnings ───────────────────────────────────────────────────
	for _, c := range snap.Components {
		if c.Status == types.StatusNormal {
			continue
		}
		hints = append(hints, componentHint(c))
	}

	// ── Remaining useful life ────────────────────────────────────────────────
	if snap.RUL.Motor < lowRULDays || snap.RUL.Gearbox < lowRULDays {
		v := float64(min(snap.RUL.Motor, snap.RUL.Gearbox))
		hints = append(hints, DiagnosticHint{
			Key:   "rul_low",
			Level: levelWarning,
			Title: "Plan maintenance soon",
			Detail: fmt.Sprintf(
				"Estimated remaining useful life is %d days for the motor and %d days for the gearbox. "+
					"Schedule an inspection before the shorter of the two runs out.",
				snap.RUL.Motor, snap.RUL.Gearbox,
			),
			Value: &v,
		})
	}

	if snap.FailureProbability >= highFailureProbability {
		v := snap.FailureProbability
		hints = append(hints, DiagnosticHint{
			Key:   "failure_probability",
			Level: levelWarning,
			Title: fmt.Sprintf("%.0f%% failure risk", v),
			Detail: fmt.Sprintf(
				"The short-term failure probability is %.1f%%. "+
					"It rises as the health score falls, so it clears once the breaches above are fixed.",
				v,
			),
			Value: &v,
		})
	}

	// ── Operating mode ───────────────────────────────────────────────────────
	switch snap.MachineStatus {
	case types.MachineOverload:
		v := r.Current
		hints = append(hints, DiagnosticHint{
			Key:   "overload",
			Level: levelWarning,
			Title: "Running overloaded",
			Detail: fmt.Sprintf(
				"The motor is drawing %.1f A at %.1f °C. "+
					"Sustained overload accelerates insulation ageing and bearing wear. "+
					"Reduce the mechanical load or check for binding in the drive train.",
				r.Current, r.MotorTemperature,
			),
			Value: &v,
		})
	case types.MachineIdle:
		v := r.Power
		hints = append(hints, DiagnosticHint{
			Key:    "idle",
			Level:  levelInfo,
			Title:  "Motor idle",
			Detail: fmt.Sprintf("Power draw is %.1f kW, so the motor is effectively idle. No action needed.", r.Power),
			Value:  &v,
		})
	}

	// ── Sensor and network hints ─────────────────────────────────────────────
	if d := math.Abs(r.RPMEthernet - r.RPMWifi); d > rpmDisagreement {
		hints = append(hints, DiagnosticHint{
			Key:   "rpm_mismatch",
			Level: levelInfo,
			Title: "RPM sensors disagree",
			Detail: fmt.Sprintf(
				"The wired sensor reports %.0f rpm and the wireless one %.0f rpm, %.0f apart. "+
					"A persistent gap usually means one encoder needs recalibration.",
				r.RPMEthernet, r.RPMWifi, d,
			),
			Value: &d,
		})
	}
	if r.LatencyWifi > highWifiLatencyMs {
		v := r.LatencyWifi
		hints = append(hints, DiagnosticHint{
			Key:   "wifi_latency",
			Level: levelInfo,
			Title: "Slow Wi-Fi link",
			Detail: fmt.Sprintf(
				"Wireless telemetry latency is %.1f ms against %.1f ms on Ethernet. "+
					"Readings from the wireless path may lag the dashboard.",
				r.LatencyWifi, r.LatencyEthernet,
			),
			Value: &v,
		})
	}
	if r.Efficiency > 0 && r.Efficiency < lowEfficiencyPct {
		v := r.Efficiency
		hints = append(hints, DiagnosticHint{
			Key:   "efficiency_low",
			Level: levelInfo,
			Title: fmt.Sprintf("%.1f%% efficiency", v),
			Detail: "Efficiency is below 90%. Worn bearings, poor lubrication and supply voltage " +
				"imbalance all show up here before they show up in temperature.",
			Value: &v,
		})
	}

	// ── All clear ─────────────────────────────────────────────────────────────
	if len(hints) == 0 {
		score := float64(snap.HealthScore)
		hints = append(hints, DiagnosticHint{
			Key:   "healthy",
			Level: levelOK,
			Title: "All clear",
			Detail: fmt.Sprintf(
				"The motor is fully operational with a health score of %d/100. "+
					"Every monitored parameter is inside its limits.",
				snap.HealthScore,
			),
			Value: &score,
		})
	}

	sort.SliceStable(hints, func(i, j int) bool {
		return levelRank(hints[i].Level) < levelRank(hints[j].Level)
	})
	return hints
}

// violationHint describes one limit breach.
func violationHint(v compute.Violation) DiagnosticHint {
	l := v.Limit
	name := l.Description
	if name == "" {
		name = string(l.Parameter)
	}
	dir, bound := "above", l.Maximum
	if !v.Above() {
		dir, bound = "below", l.Minimum
	}
	value := v.Value
	return DiagnosticHint{
		Key:   "limit_" + string(l.Parameter),
		Level: levelCritical,
		Title: fmt.Sprintf("%s out of range", name),
		Detail: fmt.Sprintf(
			"%s is %.2f%s, %s its limit of %.2f%s. "+
				"This breach counts towards the alert total and costs 15 health points until it clears.",
			name, v.Value, l.Unit, dir, bound, l.Unit,
		),
		Value: &value,
	}
}

// componentHint explains why a drive-train component is not normal.
func componentHint(c types.ComponentStatus) DiagnosticHint {
	level := levelWarning
	if c.Status == types.StatusCritical {
		level = levelCritical
	}
	h := DiagnosticHint{
		Key:   "component_" + c.Name,
		Level: level,
		Title: fmt.Sprintf("%s %s", c.Name, c.Status),
	}
	switch c.Name {
	case compute.ComponentCoupling:
		h.Detail = "Radial vibration at the coupling exceeds 3 mm/s. " +
			"Check shaft alignment and the coupling insert for wear."
		if c.Vibration != nil {
			v := math.Max(c.Vibration.X, c.Vibration.Y)
			h.Value = &v
		}
	default:
		h.Detail = fmt.Sprintf(
			"The %s temperature is close to or beyond its limit. "+
				"Check cooling airflow and lubrication before it reaches the bound.",
			c.Name,
		)
		if c.Temperature != nil {
			v := *c.Temperature
			h.Value = &v
		}
	}
	return h
}

func levelRank(level string) int {
	switch level {
	case levelCritical:
		return 0
	case levelWarning:
		return 1
	case levelInfo:
		return 2
	default:
		return 3
	}
}
