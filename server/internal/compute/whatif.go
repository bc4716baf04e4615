package compute

import "math"

// Scenario coefficients, per 100% increase of the corresponding input.
const (
	tempRisePerRPM   = 15.0
	tempRisePerLoad  = 20.0
	tempRiseLubeDegC = 12.0

	stressPerRPM  = 25.0
	stressPerLoad = 35.0
	stressLube    = 20.0

	failurePerRPM  = 30.0
	failurePerLoad = 40.0
	failureLube    = 50.0

	lifeReductionPerFailurePct = 1.2
	maxLifeReductionDays       = 150.0
	minEstimatedLifeDays       = 30.0
)

// WhatIfInput describes a hypothetical change in operating conditions.
// Increases are percentages in [0, 100].
type WhatIfInput struct {
	RPMIncreasePct  float64 `json:"rpm_increase_pct"`
	LoadIncreasePct float64 `json:"load_increase_pct"`
	PoorLubrication bool    `json:"poor_lubrication"`

	// BaseTemperature is the current motor temperature the rise is applied to.
	BaseTemperature float64 `json:"base_temperature"`
}

// WhatIfResult is the projected effect of a WhatIfInput.
type WhatIfResult struct {
	TemperatureRise      float64 `json:"temperature_rise"`
	ProjectedTemperature float64 `json:"projected_temperature"`
	StressIncrease       float64 `json:"stress_increase"`
	FailureAcceleration  float64 `json:"failure_acceleration"`
	EstimatedLifeDays    float64 `json:"estimated_life_days"`
}

// WhatIf projects temperature rise, mechanical stress, failure acceleration
// and the resulting estimated life for a scenario. The model is linear in
// both increases, with a fixed penalty for poor lubrication.
func WhatIf(in WhatIfInput) WhatIfResult {
	rpm := in.RPMIncreasePct / 100
	load := in.LoadIncreasePct / 100

	rise := rpm*tempRisePerRPM + load*tempRisePerLoad
	stress := rpm*stressPerRPM + load*stressPerLoad
	failure := rpm*failurePerRPM + load*failurePerLoad
	if in.PoorLubrication {
		rise += tempRiseLubeDegC
		stress += stressLube
		failure += failureLube
	}

	reduction := math.Min(maxLifeReductionDays, failure*lifeReductionPerFailurePct)
	return WhatIfResult{
		TemperatureRise:      rise,
		ProjectedTemperature: in.BaseTemperature + rise,
		StressIncrease:       stress,
		FailureAcceleration:  failure,
		EstimatedLifeDays:    math.Max(minEstimatedLifeDays, baseMotorRULDays-reduction),
	}
}
