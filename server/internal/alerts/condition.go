package alerts

import (
	"strconv"
	"strings"

	"github.com/motortwin/motortwin/pkg/types"
)

// evalCondition evaluates a rule condition string against a Snapshot.
//
// Supported expressions (field operator value):
//
//	health_score < 60
//	failure_probability > 50
//	alert_count >= 2
//	load_percentage >= 100
//	rul_motor < 30
//	rul_gearbox < 30
//	machine_status == Overload
//	health_status == critical
//	<parameter> > 80        any limit parameter, e.g. motorTemperature
//
// Returns (fires bool, triggering value float64).
// Returns (false, 0) if the expression cannot be parsed or the field is unknown.
func evalCondition(cond string, snap types.Snapshot) (bool, float64) {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return false, 0
	}
	field, op, rhs := parts[0], parts[1], parts[2]

	switch field {
	case "machine_status":
		if op == "==" {
			return string(snap.MachineStatus) == rhs, 0
		}
		return false, 0

	case "health_status":
		if op == "==" {
			return string(snap.HealthStatus) == rhs, 0
		}
		return false, 0

	default:
		v, ok := numericField(field, snap)
		if !ok {
			return false, 0
		}
		threshold, err := strconv.ParseFloat(rhs, 64)
		if err != nil {
			return false, 0
		}
		return compareFloat(v, op, threshold), v
	}
}

// numericField maps a field name to its value in the snapshot.
func numericField(field string, snap types.Snapshot) (float64, bool) {
	switch field {
	case "health_score":
		return float64(snap.HealthScore), true
	case "failure_probability":
		return snap.FailureProbability, true
	case "alert_count":
		return float64(snap.AlertCount), true
	case "load_percentage":
		return float64(snap.LoadPercentage), true
	case "rul_motor":
		return float64(snap.RUL.Motor), true
	case "rul_gearbox":
		return float64(snap.RUL.Gearbox), true
	default:
		return snap.Reading.Value(types.Parameter(field))
	}
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	case "!=":
		return v != threshold
	default:
		return false
	}
}
