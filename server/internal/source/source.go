package source

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/motortwin/motortwin/pkg/types"
)

// Source yields one reading per call, stamped with now.
type Source interface {
	Next(now time.Time) types.Reading
}

// Field names a generated reading field. Limit parameters reuse their
// parameter name; the remaining display-only fields have their own.
type Field string

const (
	FieldSpeed             Field = "speed"
	FieldMagneticFlux      Field = "magneticFlux"
	FieldForceDensity      Field = "forceDensity"
	FieldLatencyEthernet   Field = "latencyEthernet"
	FieldLatencyWifi       Field = "latencyWifi"
	FieldEnergyConsumption Field = "energyConsumption"
)

// Range is a closed-open [Min, Max) interval for uniform draws.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// DefaultRanges returns the generation range of every field.
func DefaultRanges() map[Field]Range {
	return map[Field]Range{
		Field(types.MotorTemperature):   {35, 75},
		Field(types.GearBoxTemperature): {28, 65},
		Field(types.OilTemperature):     {25, 55},
		Field(types.RPMEthernet):        {800, 1200},
		Field(types.RPMWifi):            {795, 1195},
		Field(types.Torque):             {15, 35},
		Field(types.VibrationX):         {0.2, 2.5},
		Field(types.VibrationY):         {0.3, 2.8},
		Field(types.VibrationZ):         {0.1, 2.2},
		Field(types.Current):            {10, 20},
		Field(types.Voltage):            {395, 410},
		Field(types.Power):              {5, 12},
		Field(types.Efficiency):         {88, 96},
		FieldSpeed:                      {5, 15},
		FieldMagneticFlux:               {0.5, 1.2},
		FieldForceDensity:               {50, 150},
		FieldLatencyEthernet:            {1, 10},
		FieldLatencyWifi:                {5, 50},
		FieldEnergyConsumption:          {100, 500},
	}
}

// Generator is a Source of independent uniform values rounded to two
// decimals. It is safe for concurrent use.
type Generator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	ranges map[Field]Range
}

// NewGenerator creates a Generator drawing from rng. Entries in overrides
// replace the matching default range; unknown fields are ignored.
func NewGenerator(rng *rand.Rand, overrides map[Field]Range) *Generator {
	ranges := DefaultRanges()
	for f, r := range overrides {
		if _, ok := ranges[f]; ok {
			ranges[f] = r
		}
	}
	return &Generator{rng: rng, ranges: ranges}
}

// Next implements Source.
func (g *Generator) Next(now time.Time) types.Reading {
	g.mu.Lock()
	defer g.mu.Unlock()

	return types.Reading{
		Timestamp:          now,
		MotorTemperature:   g.draw(Field(types.MotorTemperature)),
		GearBoxTemperature: g.draw(Field(types.GearBoxTemperature)),
		OilTemperature:     g.draw(Field(types.OilTemperature)),
		RPMEthernet:        g.draw(Field(types.RPMEthernet)),
		RPMWifi:            g.draw(Field(types.RPMWifi)),
		Torque:             g.draw(Field(types.Torque)),
		Vibration: types.Vibration{
			X: g.draw(Field(types.VibrationX)),
			Y: g.draw(Field(types.VibrationY)),
			Z: g.draw(Field(types.VibrationZ)),
		},
		Speed:             g.draw(FieldSpeed),
		Current:           g.draw(Field(types.Current)),
		Voltage:           g.draw(Field(types.Voltage)),
		Power:             g.draw(Field(types.Power)),
		Efficiency:        g.draw(Field(types.Efficiency)),
		MagneticFlux:      g.draw(FieldMagneticFlux),
		ForceDensity:      g.draw(FieldForceDensity),
		LatencyEthernet:   g.draw(FieldLatencyEthernet),
		LatencyWifi:       g.draw(FieldLatencyWifi),
		EnergyConsumption: g.draw(FieldEnergyConsumption),
	}
}

// draw returns a uniform value from the range of f. Callers hold g.mu.
func (g *Generator) draw(f Field) float64 {
	r := g.ranges[f]
	v := r.Min + g.rng.Float64()*(r.Max-r.Min)
	return math.Round(v*100) / 100
}

// Backfill returns n readings from src spaced step apart, the last one
// stamped end. It seeds the history window so the charts are full from the
// first frame.
func Backfill(src Source, n int, end time.Time, step time.Duration) []types.Reading {
	if n <= 0 {
		return nil
	}
	out := make([]types.Reading, n)
	for i := 0; i < n; i++ {
		out[i] = src.Next(end.Add(-time.Duration(n-1-i) * step))
	}
	return out
}
