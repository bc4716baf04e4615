package types

import "time"

// Status is the three-level classification shared by components and the
// overall health indicator.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Severity orders statuses so that a larger value is a worse condition.
func (s Status) Severity() int {
	switch s {
	case StatusWarning:
		return 1
	case StatusCritical:
		return 2
	default:
		return 0
	}
}

// MachineStatus is the coarse operating mode of the motor.
type MachineStatus string

const (
	MachineIdle     MachineStatus = "Idle"
	MachineOverload MachineStatus = "Overload"
	MachineNormal   MachineStatus = "Normal"
)

// ComponentStatus describes one physical sub-assembly of the drive train.
// Only the measurements relevant to the component are set.
type ComponentStatus struct {
	Name        string     `json:"name"`
	Status      Status     `json:"status"`
	RPM         *float64   `json:"rpm,omitempty"`
	Temperature *float64   `json:"temperature,omitempty"`
	Torque      *float64   `json:"torque,omitempty"`
	Vibration   *Vibration `json:"vibration,omitempty"`
}

// RUL is the remaining useful life estimate in days.
type RUL struct {
	Motor   int `json:"motor"`
	Gearbox int `json:"gearbox"`
}

// Direction is the commanded rotation direction of the motor.
type Direction string

const (
	Forward Direction = "forward"
	Reverse Direction = "reverse"
)

// Control is the operator-commanded run state shown next to the 3D model.
type Control struct {
	Running   bool      `json:"running"`
	Direction Direction `json:"direction"`
}

// Snapshot bundles everything derived from a single tick.
type Snapshot struct {
	Seq                uint64            `json:"seq"`
	GeneratedAt        time.Time         `json:"generated_at"`
	Reading            Reading           `json:"reading"`
	HealthScore        int               `json:"health_score"`
	HealthStatus       Status            `json:"health_status"`
	RUL                RUL               `json:"rul"`
	FailureProbability float64           `json:"failure_probability"`
	Components         []ComponentStatus `json:"components"`
	AlertCount         int               `json:"alert_count"`
	MachineStatus      MachineStatus     `json:"machine_status"`
	LoadPercentage     int               `json:"load_percentage"`
	Control            Control           `json:"control"`
}
