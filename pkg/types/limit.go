package types

// Parameter identifies one limit-table row and the Reading field it bounds.
type Parameter string

// Known parameters, in the order the dashboard lists them.
const (
	MotorTemperature   Parameter = "motorTemperature"
	GearBoxTemperature Parameter = "gearBoxTemperature"
	OilTemperature     Parameter = "oilTemperature"
	RPMEthernet        Parameter = "rpmEthernet"
	RPMWifi            Parameter = "rpmWifi"
	Torque             Parameter = "torque"
	VibrationX         Parameter = "vibrationX"
	VibrationY         Parameter = "vibrationY"
	VibrationZ         Parameter = "vibrationZ"
	Current            Parameter = "current"
	Voltage            Parameter = "voltage"
	Power              Parameter = "power"
	Efficiency         Parameter = "efficiency"
)

// Parameters lists every known parameter in canonical order.
var Parameters = []Parameter{
	MotorTemperature,
	GearBoxTemperature,
	OilTemperature,
	RPMEthernet,
	RPMWifi,
	Torque,
	VibrationX,
	VibrationY,
	VibrationZ,
	Current,
	Voltage,
	Power,
	Efficiency,
}

// Known reports whether p is one of the predefined parameters.
func (p Parameter) Known() bool {
	_, ok := Reading{}.Value(p)
	return ok
}

// Limit is the operating envelope configured for one parameter.
type Limit struct {
	Parameter   Parameter `json:"parameter" yaml:"parameter"`
	Minimum     float64   `json:"minimum" yaml:"minimum"`
	Maximum     float64   `json:"maximum" yaml:"maximum"`
	Unit        string    `json:"unit" yaml:"unit"`
	Description string    `json:"description" yaml:"description"`
}

// Midpoint returns the centre of the limit's range.
func (l Limit) Midpoint() float64 {
	return (l.Maximum + l.Minimum) / 2
}

// Contains reports whether v lies within [Minimum, Maximum].
func (l Limit) Contains(v float64) bool {
	return v >= l.Minimum && v <= l.Maximum
}
