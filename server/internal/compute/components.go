package compute

import (
	"math"

	"github.com/motortwin/motortwin/pkg/types"
)

// Component names, in drive-train order.
const (
	ComponentMotor    = "Motor"
	ComponentShaft    = "Shaft"
	ComponentCoupling = "Coupling"
	ComponentGearbox  = "Gearbox"
)

const (
	// couplingVibrationWarn is the X/Y vibration above which the coupling
	// is flagged. The coupling has no limit row of its own.
	couplingVibrationWarn = 3.0

	// Gearbox output relative to the motor shaft.
	gearboxRPMRatio    = 0.4
	gearboxTorqueRatio = 2.5

	idlePowerKW       = 2.0
	overloadCurrentA  = 22.0
	overloadMotorTemp = 78.0

	// ratedPowerKW is the power that corresponds to 100% load.
	ratedPowerKW = 12.0
)

// ComponentStatuses derives the status of the four drive-train components.
// A component whose temperature limit is missing from limits is reported as
// normal.
func ComponentStatuses(r types.Reading, limits []types.Limit) []types.ComponentStatus {
	vib := r.Vibration
	gearboxRPM := math.Round(r.RPMEthernet * gearboxRPMRatio)
	gearboxTorque := r.Torque * gearboxTorqueRatio

	coupling := types.StatusNormal
	if vib.X > couplingVibrationWarn || vib.Y > couplingVibrationWarn {
		coupling = types.StatusWarning
	}

	return []types.ComponentStatus{
		{
			Name:        ComponentMotor,
			Status:      statusFor(r.MotorTemperature, limits, types.MotorTemperature),
			RPM:         ptr(r.RPMEthernet),
			Temperature: ptr(r.MotorTemperature),
			Vibration:   &vib,
		},
		{
			Name:   ComponentShaft,
			Status: types.StatusNormal,
			RPM:    ptr(r.RPMEthernet),
			Torque: ptr(r.Torque),
		},
		{
			Name:      ComponentCoupling,
			Status:    coupling,
			Torque:    ptr(r.Torque),
			Vibration: &vib,
		},
		{
			Name:        ComponentGearbox,
			Status:      statusFor(r.GearBoxTemperature, limits, types.GearBoxTemperature),
			Temperature: ptr(r.GearBoxTemperature),
			RPM:         ptr(gearboxRPM),
			Torque:      ptr(gearboxTorque),
		},
	}
}

// statusFor classifies v against the first limit row for p.
func statusFor(v float64, limits []types.Limit, p types.Parameter) types.Status {
	l, ok := FindLimit(limits, p)
	if !ok {
		return types.StatusNormal
	}
	return ClassifyStatus(v, l.Minimum, l.Maximum)
}

// FindLimit returns the first row for p in limits.
func FindLimit(limits []types.Limit, p types.Parameter) (types.Limit, bool) {
	for _, l := range limits {
		if l.Parameter == p {
			return l, true
		}
	}
	return types.Limit{}, false
}

// MachineState reports the operating mode. Idle is checked before Overload,
// so a motor drawing under 2 kW is idle regardless of current or temperature.
func MachineState(r types.Reading) types.MachineStatus {
	switch {
	case r.Power < idlePowerKW:
		return types.MachineIdle
	case r.Current > overloadCurrentA || r.MotorTemperature > overloadMotorTemp:
		return types.MachineOverload
	default:
		return types.MachineNormal
	}
}

// LoadPercentage is power relative to the rated 12 kW, rounded and kept
// within 0–100.
func LoadPercentage(r types.Reading) int {
	pct := math.Round(math.Min(100, r.Power/ratedPowerKW*100))
	if pct < 0 {
		return 0
	}
	return int(pct)
}

func ptr(v float64) *float64 { return &v }
