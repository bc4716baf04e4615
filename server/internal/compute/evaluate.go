package compute

import (
	"math/rand"

	"github.com/motortwin/motortwin/pkg/types"
)

// Result is every derived metric for one reading.
type Result struct {
	HealthScore        int
	HealthStatus       types.Status
	RUL                types.RUL
	FailureProbability float64
	Components         []types.ComponentStatus
	Violations         []Violation
	AlertCount         int
	MachineStatus      types.MachineStatus
	LoadPercentage     int
}

// Evaluate runs the full metric pipeline for r against limits:
// health score, then the estimators that depend on it, then alerts and
// component classification. rng is used only by the estimators.
func Evaluate(r types.Reading, limits []types.Limit, rng *rand.Rand) Result {
	score := HealthScore(r, limits)
	violations := Violations(r, limits)

	return Result{
		HealthScore:        score,
		HealthStatus:       HealthStatus(score),
		RUL:                EstimateRUL(score, rng),
		FailureProbability: FailureProbability(score, rng),
		Components:         ComponentStatuses(r, limits),
		Violations:         violations,
		AlertCount:         len(violations),
		MachineStatus:      MachineState(r),
		LoadPercentage:     LoadPercentage(r),
	}
}
