package types

import "time"

// Vibration is the 3-axis vibration velocity in mm/s.
type Vibration struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Reading is one tick's worth of motor telemetry. A Reading is produced by a
// telemetry source and never modified afterwards.
//
// Units: temperatures °C, RPM rev/min, torque Nm, vibration mm/s, speed m/s,
// current A, voltage V, power kW, efficiency %, magnetic flux Wb, force
// density kN/m², latencies ms, energy consumption kWh.
type Reading struct {
	Timestamp time.Time `json:"timestamp"`

	MotorTemperature   float64   `json:"motor_temperature"`
	GearBoxTemperature float64   `json:"gearbox_temperature"`
	OilTemperature     float64   `json:"oil_temperature"`
	RPMEthernet        float64   `json:"rpm_ethernet"`
	RPMWifi            float64   `json:"rpm_wifi"`
	Torque             float64   `json:"torque"`
	Vibration          Vibration `json:"vibration"`
	Speed              float64   `json:"speed"`
	Current            float64   `json:"current"`
	Voltage            float64   `json:"voltage"`
	Power              float64   `json:"power"`
	Efficiency         float64   `json:"efficiency"`
	MagneticFlux       float64   `json:"magnetic_flux"`
	ForceDensity       float64   `json:"force_density"`
	LatencyEthernet    float64   `json:"latency_ethernet"`
	LatencyWifi        float64   `json:"latency_wifi"`
	EnergyConsumption  float64   `json:"energy_consumption"`
}

// Value returns the reading field that backs parameter p.
// The second return value is false when p has no corresponding field.
func (r Reading) Value(p Parameter) (float64, bool) {
	switch p {
	case MotorTemperature:
		return r.MotorTemperature, true
	case GearBoxTemperature:
		return r.GearBoxTemperature, true
	case OilTemperature:
		return r.OilTemperature, true
	case RPMEthernet:
		return r.RPMEthernet, true
	case RPMWifi:
		return r.RPMWifi, true
	case Torque:
		return r.Torque, true
	case VibrationX:
		return r.Vibration.X, true
	case VibrationY:
		return r.Vibration.Y, true
	case VibrationZ:
		return r.Vibration.Z, true
	case Current:
		return r.Current, true
	case Voltage:
		return r.Voltage, true
	case Power:
		return r.Power, true
	case Efficiency:
		return r.Efficiency, true
	default:
		return 0, false
	}
}
