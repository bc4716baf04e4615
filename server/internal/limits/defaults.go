package limits

import "github.com/motortwin/motortwin/pkg/types"

// Defaults returns the factory limit table in canonical order.
// The returned slice is freshly allocated on every call.
func Defaults() []types.Limit {
	return []types.Limit{
		{Parameter: types.MotorTemperature, Minimum: 20, Maximum: 85, Unit: "°C", Description: "Motor Temperature"},
		{Parameter: types.GearBoxTemperature, Minimum: 20, Maximum: 80, Unit: "°C", Description: "Gear Box Temperature"},
		{Parameter: types.OilTemperature, Minimum: 15, Maximum: 65, Unit: "°C", Description: "Oil Temperature"},
		{Parameter: types.RPMEthernet, Minimum: 0, Maximum: 1500, Unit: "RPM", Description: "RPM (Ethernet)"},
		{Parameter: types.RPMWifi, Minimum: 0, Maximum: 1500, Unit: "RPM", Description: "RPM (WiFi)"},
		{Parameter: types.Torque, Minimum: 0, Maximum: 50, Unit: "Nm", Description: "Torque"},
		{Parameter: types.VibrationX, Minimum: 0, Maximum: 5, Unit: "mm/s", Description: "Vibration X"},
		{Parameter: types.VibrationY, Minimum: 0, Maximum: 5, Unit: "mm/s", Description: "Vibration Y"},
		{Parameter: types.VibrationZ, Minimum: 0, Maximum: 5, Unit: "mm/s", Description: "Vibration Z"},
		{Parameter: types.Current, Minimum: 0, Maximum: 25, Unit: "A", Description: "Current"},
		{Parameter: types.Voltage, Minimum: 380, Maximum: 420, Unit: "V", Description: "Voltage"},
		{Parameter: types.Power, Minimum: 0, Maximum: 15, Unit: "kW", Description: "Power"},
		{Parameter: types.Efficiency, Minimum: 85, Maximum: 98, Unit: "%", Description: "Efficiency"},
	}
}
