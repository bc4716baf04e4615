package compute

import (
	"math"

	"github.com/motortwin/motortwin/pkg/types"
)

// Deductions applied per monitored parameter.
const (
	deductOutOfBounds = 15
	deductNearBound   = 5

	// nearBoundDeviation is the normalised distance from the midpoint
	// (0 = centre, 1 = on a bound) beyond which deductNearBound applies.
	nearBoundDeviation = 0.7

	maxScore = 100
)

// monitored is the subset of parameters that feeds the health score and the
// alert count. The remaining limits are display-only.
var monitored = map[types.Parameter]bool{
	types.MotorTemperature:   true,
	types.GearBoxTemperature: true,
	types.Torque:             true,
	types.VibrationX:         true,
	types.VibrationY:         true,
	types.VibrationZ:         true,
}

// Monitored reports whether p participates in scoring and alerting.
func Monitored(p types.Parameter) bool {
	return monitored[p]
}

// monitoredValue returns the reading value for p when p is monitored.
func monitoredValue(r types.Reading, p types.Parameter) (float64, bool) {
	if !monitored[p] {
		return 0, false
	}
	return r.Value(p)
}

// HealthScore computes the 0–100 health score of r against limits.
//
// Starting from 100, each monitored parameter deducts 15 when its value is
// outside [minimum, maximum], or 5 when it is inside but its deviation
// |value - midpoint| / (range/2) exceeds 0.7. Each parameter deducts at most
// once: a later row for the same parameter overwrites an earlier deduction
// but never clears it.
func HealthScore(r types.Reading, limits []types.Limit) int {
	deductions := make(map[types.Parameter]int)

	for _, l := range limits {
		v, ok := monitoredValue(r, l.Parameter)
		if !ok {
			continue
		}
		switch {
		case !l.Contains(v):
			deductions[l.Parameter] = deductOutOfBounds
		case deviation(v, l) > nearBoundDeviation:
			deductions[l.Parameter] = deductNearBound
		}
	}

	score := maxScore
	for _, d := range deductions {
		score -= d
	}
	return clampScore(score)
}

// deviation is the distance of v from the limit midpoint, normalised by the
// half-range. A zero-width range yields NaN (v on the midpoint) or +Inf,
// neither of which panics.
func deviation(v float64, l types.Limit) float64 {
	half := (l.Maximum - l.Minimum) / 2
	return math.Abs(v-l.Midpoint()) / half
}

// clampScore restricts s to [0, 100].
func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > maxScore {
		return maxScore
	}
	return s
}
