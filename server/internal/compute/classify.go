package compute

import "github.com/motortwin/motortwin/pkg/types"

// Threshold fractions applied to a limit's bounds by ClassifyStatus.
// The fractions scale the bounds themselves, so a minimum of 0 collapses
// both lower thresholds to 0 and only the upper side can classify.
const (
	criticalHighFrac = 0.95
	criticalLowFrac  = 1.05
	warningHighFrac  = 0.85
	warningLowFrac   = 1.15
)

// Health score thresholds used by HealthStatus.
const (
	ThresholdNormal  = 80
	ThresholdWarning = 60
)

// ClassifyStatus grades value against the range [min, max].
//
//	critical: value > max*0.95 or value < min*1.05
//	warning:  value > max*0.85 or value < min*1.15
//	normal:   otherwise
func ClassifyStatus(value, min, max float64) types.Status {
	switch {
	case value > max*criticalHighFrac || value < min*criticalLowFrac:
		return types.StatusCritical
	case value > max*warningHighFrac || value < min*warningLowFrac:
		return types.StatusWarning
	default:
		return types.StatusNormal
	}
}

// HealthStatus maps a 0–100 health score to a status colour.
func HealthStatus(score int) types.Status {
	switch {
	case score >= ThresholdNormal:
		return types.StatusNormal
	case score >= ThresholdWarning:
		return types.StatusWarning
	default:
		return types.StatusCritical
	}
}
