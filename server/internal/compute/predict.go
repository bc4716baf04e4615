package compute

import (
	"math"
	"math/rand"

	"github.com/motortwin/motortwin/pkg/types"
)

// Baseline remaining life of healthy equipment, in days.
const (
	baseMotorRULDays   = 180
	baseGearboxRULDays = 150
)

// Jitter ranges applied to the RUL baselines to mimic measurement noise.
var (
	motorJitter   = [2]float64{0.8, 1.1}
	gearboxJitter = [2]float64{0.75, 1.05}
)

const (
	minFailureProbability = 5.0
	failureNoiseSpan      = 10.0
)

// EstimateRUL scales the baseline remaining life by the health score and an
// independent jitter per component. Each jitter is drawn uniformly from its
// range and rounded to two decimals. rng is consumed in a fixed order
// (motor, then gearbox), so a seeded source gives reproducible estimates.
func EstimateRUL(score int, rng *rand.Rand) types.RUL {
	health := float64(score) / 100
	j1 := jitter(rng, motorJitter)
	j2 := jitter(rng, gearboxJitter)
	return types.RUL{
		Motor:   int(math.Round(baseMotorRULDays * health * j1)),
		Gearbox: int(math.Round(baseGearboxRULDays * health * j2)),
	}
}

// FailureProbability is the percentage chance of failure shown on the
// predictive-maintenance panel: 100 - score plus up to 10 points of noise,
// never below 5.
func FailureProbability(score int, rng *rand.Rand) float64 {
	p := 100 - float64(score) + rng.Float64()*failureNoiseSpan
	return math.Max(minFailureProbability, p)
}

// jitter draws uniformly from [r[0], r[1]) and rounds to two decimals.
func jitter(rng *rand.Rand, r [2]float64) float64 {
	v := r[0] + rng.Float64()*(r[1]-r[0])
	return math.Round(v*100) / 100
}
