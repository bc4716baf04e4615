package compute

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/motortwin/motortwin/pkg/types"
)

// almostEqual returns true if a and b are within epsilon of each other.
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// testLimits mirrors the factory limit table.
var testLimits = []types.Limit{
	{Parameter: types.MotorTemperature, Minimum: 20, Maximum: 85, Unit: "°C"},
	{Parameter: types.GearBoxTemperature, Minimum: 20, Maximum: 80, Unit: "°C"},
	{Parameter: types.OilTemperature, Minimum: 15, Maximum: 65, Unit: "°C"},
	{Parameter: types.RPMEthernet, Minimum: 0, Maximum: 1500, Unit: "RPM"},
	{Parameter: types.RPMWifi, Minimum: 0, Maximum: 1500, Unit: "RPM"},
	{Parameter: types.Torque, Minimum: 0, Maximum: 50, Unit: "Nm"},
	{Parameter: types.VibrationX, Minimum: 0, Maximum: 5, Unit: "mm/s"},
	{Parameter: types.VibrationY, Minimum: 0, Maximum: 5, Unit: "mm/s"},
	{Parameter: types.VibrationZ, Minimum: 0, Maximum: 5, Unit: "mm/s"},
	{Parameter: types.Current, Minimum: 0, Maximum: 25, Unit: "A"},
	{Parameter: types.Voltage, Minimum: 380, Maximum: 420, Unit: "V"},
	{Parameter: types.Power, Minimum: 0, Maximum: 15, Unit: "kW"},
	{Parameter: types.Efficiency, Minimum: 85, Maximum: 98, Unit: "%"},
}

// midpointReading returns a reading with every limited field on its midpoint.
func midpointReading() types.Reading {
	return types.Reading{
		Timestamp:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		MotorTemperature:   52.5,
		GearBoxTemperature: 50,
		OilTemperature:     40,
		RPMEthernet:        750,
		RPMWifi:            750,
		Torque:             25,
		Vibration:          types.Vibration{X: 2.5, Y: 2.5, Z: 2.5},
		Current:            12.5,
		Voltage:            400,
		Power:              7.5,
		Efficiency:         91.5,
	}
}

// --- ClassifyStatus ---

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name          string
		value, lo, hi float64
		want          types.Status
	}{
		{"above 95% of max", 90, 20, 85, types.StatusCritical},
		{"just above 95% of max", 80.8, 20, 85, types.StatusCritical},
		{"between 85% and 95% of max", 75, 20, 85, types.StatusWarning},
		{"centre", 50, 20, 85, types.StatusNormal},
		{"below 115% of min", 22, 20, 85, types.StatusWarning},
		{"below 105% of min", 20.5, 20, 85, types.StatusCritical},
		{"below min", 10, 20, 85, types.StatusCritical},
		{"zero min, low value stays normal", 0.1, 0, 5, types.StatusNormal},
		{"zero min, zero value stays normal", 0, 0, 5, types.StatusNormal},
		{"zero min, negative value", -0.1, 0, 5, types.StatusCritical},
		{"zero min, high value", 4.9, 0, 5, types.StatusCritical},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyStatus(tc.value, tc.lo, tc.hi); got != tc.want {
				t.Errorf("ClassifyStatus(%.2f, %.2f, %.2f) = %q, want %q",
					tc.value, tc.lo, tc.hi, got, tc.want)
			}
		})
	}
}

func TestClassifyStatus_MonotonicOutwardFromMidpoint(t *testing.T) {
	// Narrow ranges far from zero (voltage, efficiency) overlap their
	// thresholds and are graded by whichever side trips first.
	ranges := [][2]float64{{20, 85}, {20, 80}, {15, 65}, {0, 5}, {0, 50}, {0, 1500}}
	for _, r := range ranges {
		lo, hi := r[0], r[1]
		mid := (lo + hi) / 2
		span := hi - lo
		for _, dir := range []float64{1, -1} {
			prev := ClassifyStatus(mid, lo, hi).Severity()
			for step := 1; step <= 200; step++ {
				v := mid + dir*float64(step)*span/100
				sev := ClassifyStatus(v, lo, hi).Severity()
				if sev < prev {
					t.Fatalf("range [%.0f,%.0f]: value %.3f classified better than a value nearer the midpoint", lo, hi, v)
				}
				prev = sev
			}
		}
	}
}

func TestHealthStatus(t *testing.T) {
	tests := []struct {
		score int
		want  types.Status
	}{
		{100, types.StatusNormal},
		{80, types.StatusNormal},
		{79, types.StatusWarning},
		{60, types.StatusWarning},
		{59, types.StatusCritical},
		{0, types.StatusCritical},
	}
	for _, tc := range tests {
		if got := HealthStatus(tc.score); got != tc.want {
			t.Errorf("HealthStatus(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

// --- HealthScore ---

func TestHealthScore_MidpointIsPerfect(t *testing.T) {
	if got := HealthScore(midpointReading(), testLimits); got != 100 {
		t.Errorf("HealthScore at midpoints = %d, want 100", got)
	}
}

func TestHealthScore_Deductions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *types.Reading)
		want   int
	}{
		{"motor temp out of bounds", func(r *types.Reading) { r.MotorTemperature = 90 }, 85},
		{"motor temp near bound", func(r *types.Reading) { r.MotorTemperature = 80 }, 95},
		{"exactly on max is in bounds", func(r *types.Reading) { r.Torque = 50 }, 95},
		{"deviation of exactly 0.7 is not deducted", func(r *types.Reading) { r.Torque = 42.5 }, 100},
		{"vibration x below min", func(r *types.Reading) { r.Vibration.X = -1 }, 85},
		{"unmonitored voltage ignored", func(r *types.Reading) { r.Voltage = 500 }, 100},
		{"unmonitored power ignored", func(r *types.Reading) { r.Power = 50 }, 100},
		{"mixed", func(r *types.Reading) {
			r.MotorTemperature = 95
			r.GearBoxTemperature = 77
			r.Vibration.Z = 4.9
		}, 75},
		{"all monitored out of bounds", func(r *types.Reading) {
			r.MotorTemperature = 100
			r.GearBoxTemperature = 100
			r.Torque = 80
			r.Vibration = types.Vibration{X: 9, Y: 9, Z: 9}
		}, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := midpointReading()
			tc.mutate(&r)
			if got := HealthScore(r, testLimits); got != tc.want {
				t.Errorf("HealthScore = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestHealthScore_DuplicateRowDeductsOnce(t *testing.T) {
	r := midpointReading()
	r.MotorTemperature = 90
	limits := []types.Limit{
		{Parameter: types.MotorTemperature, Minimum: 20, Maximum: 85},
		{Parameter: types.MotorTemperature, Minimum: 20, Maximum: 85},
	}
	if got := HealthScore(r, limits); got != 85 {
		t.Errorf("HealthScore with duplicate rows = %d, want 85", got)
	}

	// A later in-range row does not clear the earlier deduction.
	limits[1].Maximum = 200
	if got := HealthScore(r, limits); got != 85 {
		t.Errorf("HealthScore after relaxed duplicate = %d, want 85", got)
	}
}

func TestHealthScore_ZeroWidthRange(t *testing.T) {
	limits := []types.Limit{{Parameter: types.Torque, Minimum: 25, Maximum: 25}}

	r := midpointReading()
	if got := HealthScore(r, limits); got != 100 {
		t.Errorf("value on a zero-width range: got %d, want 100", got)
	}
	r.Torque = 30
	if got := HealthScore(r, limits); got != 85 {
		t.Errorf("value off a zero-width range: got %d, want 85", got)
	}
}

func TestHealthScore_InvertedRange(t *testing.T) {
	// maximum < minimum makes every value out of bounds; the score still
	// stays within range.
	limits := []types.Limit{{Parameter: types.Torque, Minimum: 50, Maximum: 0}}
	if got := HealthScore(midpointReading(), limits); got != 85 {
		t.Errorf("inverted range: got %d, want 85", got)
	}
}

func TestHealthScore_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	wild := func() float64 { return rng.Float64()*400 - 200 }
	for i := 0; i < 2000; i++ {
		r := types.Reading{
			MotorTemperature:   wild(),
			GearBoxTemperature: wild(),
			Torque:             wild(),
			Vibration:          types.Vibration{X: wild(), Y: wild(), Z: wild()},
		}
		limits := make([]types.Limit, len(testLimits))
		copy(limits, testLimits)
		for j := range limits {
			limits[j].Minimum = wild()
			limits[j].Maximum = wild()
		}
		if got := HealthScore(r, limits); got < 0 || got > 100 {
			t.Fatalf("HealthScore = %d out of [0,100] for %+v", got, r)
		}
	}
}

func TestHealthScore_EmptyLimits(t *testing.T) {
	r := midpointReading()
	r.MotorTemperature = 500
	if got := HealthScore(r, nil); got != 100 {
		t.Errorf("HealthScore with no limits = %d, want 100", got)
	}
}

// --- Violations / AlertCount ---

func TestAlertCount(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *types.Reading)
		want   int
	}{
		{"none", func(r *types.Reading) {}, 0},
		{"on the bound is not an alert", func(r *types.Reading) { r.MotorTemperature = 85 }, 0},
		{"above max", func(r *types.Reading) { r.MotorTemperature = 85.01 }, 1},
		{"below min", func(r *types.Reading) { r.GearBoxTemperature = 19.99 }, 1},
		{"unmonitored fields never alert", func(r *types.Reading) {
			r.Voltage = 1000
			r.Current = 100
			r.Efficiency = 10
		}, 0},
		{"three vibration axes", func(r *types.Reading) {
			r.Vibration = types.Vibration{X: 6, Y: 7, Z: -1}
		}, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := midpointReading()
			tc.mutate(&r)
			if got := AlertCount(r, testLimits); got != tc.want {
				t.Errorf("AlertCount = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestViolations_SkipsUnknownParameter(t *testing.T) {
	limits := []types.Limit{
		{Parameter: "bearingTemperature", Minimum: 0, Maximum: 1},
		{Parameter: types.Torque, Minimum: 0, Maximum: 10},
	}
	got := Violations(midpointReading(), limits)
	if len(got) != 1 {
		t.Fatalf("Violations: got %d, want 1", len(got))
	}
	if got[0].Limit.Parameter != types.Torque || got[0].Value != 25 {
		t.Errorf("violation = %+v, want torque at 25", got[0])
	}
	if !got[0].Above() {
		t.Error("Above() = false, want true")
	}
}

// --- ComponentStatuses ---

func TestComponentStatuses(t *testing.T) {
	r := midpointReading()
	r.MotorTemperature = 90
	r.RPMEthernet = 1001
	r.Torque = 20
	r.Vibration = types.Vibration{X: 3.1, Y: 1, Z: 1}

	got := ComponentStatuses(r, testLimits)
	if len(got) != 4 {
		t.Fatalf("got %d components, want 4", len(got))
	}

	wantNames := []string{ComponentMotor, ComponentShaft, ComponentCoupling, ComponentGearbox}
	wantStatus := []types.Status{types.StatusCritical, types.StatusNormal, types.StatusWarning, types.StatusNormal}
	for i, c := range got {
		if c.Name != wantNames[i] {
			t.Errorf("component[%d].Name = %q, want %q", i, c.Name, wantNames[i])
		}
		if c.Status != wantStatus[i] {
			t.Errorf("%s status = %q, want %q", c.Name, c.Status, wantStatus[i])
		}
	}

	gearbox := got[3]
	if gearbox.RPM == nil || *gearbox.RPM != 400 {
		t.Errorf("gearbox rpm = %v, want 400", gearbox.RPM)
	}
	if gearbox.Torque == nil || *gearbox.Torque != 50 {
		t.Errorf("gearbox torque = %v, want 50", gearbox.Torque)
	}
	if got[1].Temperature != nil || got[1].Vibration != nil {
		t.Error("shaft should carry only rpm and torque")
	}
	if got[2].RPM != nil {
		t.Error("coupling should not carry rpm")
	}
}

func TestComponentStatuses_CouplingUsesOnlyXY(t *testing.T) {
	r := midpointReading()
	r.Vibration = types.Vibration{X: 1, Y: 1, Z: 4.9}
	if got := ComponentStatuses(r, testLimits)[2].Status; got != types.StatusNormal {
		t.Errorf("coupling with high Z only = %q, want normal", got)
	}
	r.Vibration.Y = 3.01
	if got := ComponentStatuses(r, testLimits)[2].Status; got != types.StatusWarning {
		t.Errorf("coupling with Y > 3 = %q, want warning", got)
	}
}

func TestComponentStatuses_MissingLimitIsNormal(t *testing.T) {
	r := midpointReading()
	r.MotorTemperature = 500
	r.GearBoxTemperature = 500
	for _, c := range ComponentStatuses(r, nil) {
		if c.Name == ComponentCoupling {
			continue
		}
		if c.Status != types.StatusNormal {
			t.Errorf("%s without limits = %q, want normal", c.Name, c.Status)
		}
	}
}

// --- MachineState / LoadPercentage ---

func TestMachineState(t *testing.T) {
	tests := []struct {
		name string
		r    types.Reading
		want types.MachineStatus
	}{
		{"idle", types.Reading{Power: 1, Current: 5, MotorTemperature: 50}, types.MachineIdle},
		{"idle wins over overload", types.Reading{Power: 1, Current: 30, MotorTemperature: 90}, types.MachineIdle},
		{"overload on current", types.Reading{Power: 8, Current: 22.5, MotorTemperature: 50}, types.MachineOverload},
		{"overload on temperature", types.Reading{Power: 8, Current: 10, MotorTemperature: 78.1}, types.MachineOverload},
		{"boundary values are normal", types.Reading{Power: 2, Current: 22, MotorTemperature: 78}, types.MachineNormal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MachineState(tc.r); got != tc.want {
				t.Errorf("MachineState = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoadPercentage(t *testing.T) {
	tests := []struct {
		power float64
		want  int
	}{
		{12, 100},
		{18, 100},
		{6, 50},
		{5, 42},
		{0, 0},
		{-3, 0},
	}
	for _, tc := range tests {
		if got := LoadPercentage(types.Reading{Power: tc.power}); got != tc.want {
			t.Errorf("LoadPercentage(power=%.1f) = %d, want %d", tc.power, got, tc.want)
		}
	}
}

// --- EstimateRUL / FailureProbability ---

func TestEstimateRUL_SeededIsReproducible(t *testing.T) {
	a := EstimateRUL(90, rand.New(rand.NewSource(42)))
	b := EstimateRUL(90, rand.New(rand.NewSource(42)))
	if a != b {
		t.Errorf("same seed gave %+v and %+v", a, b)
	}
}

func TestEstimateRUL_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		got := EstimateRUL(100, rng)
		if got.Motor < 144 || got.Motor > 198 {
			t.Fatalf("motor RUL %d outside [144,198]", got.Motor)
		}
		if got.Gearbox < 113 || got.Gearbox > 158 {
			t.Fatalf("gearbox RUL %d outside [113,158]", got.Gearbox)
		}
	}
}

func TestEstimateRUL_ZeroScore(t *testing.T) {
	got := EstimateRUL(0, rand.New(rand.NewSource(3)))
	if got.Motor != 0 || got.Gearbox != 0 {
		t.Errorf("EstimateRUL(0) = %+v, want zero", got)
	}
}

func TestJitter_TwoDecimals(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		j := jitter(rng, motorJitter)
		if !almostEqual(j*100, math.Round(j*100), 1e-9) {
			t.Fatalf("jitter %.6f has more than two decimals", j)
		}
		if j < 0.8 || j > 1.1 {
			t.Fatalf("jitter %.2f outside [0.8,1.1]", j)
		}
	}
}

func TestFailureProbability(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 500; i++ {
		if p := FailureProbability(100, rng); p < 5 || p >= 10 {
			t.Fatalf("FailureProbability(100) = %.2f, want [5,10)", p)
		}
		if p := FailureProbability(0, rng); p < 100 || p >= 110 {
			t.Fatalf("FailureProbability(0) = %.2f, want [100,110)", p)
		}
	}
}

// --- WhatIf ---

func TestWhatIf(t *testing.T) {
	tests := []struct {
		name string
		in   WhatIfInput
		want WhatIfResult
	}{
		{
			name: "baseline",
			in:   WhatIfInput{BaseTemperature: 50},
			want: WhatIfResult{ProjectedTemperature: 50, EstimatedLifeDays: 180},
		},
		{
			name: "half rpm increase",
			in:   WhatIfInput{RPMIncreasePct: 50, BaseTemperature: 50},
			// rise 7.5, stress 12.5, failure 15, life 180-18
			want: WhatIfResult{TemperatureRise: 7.5, ProjectedTemperature: 57.5, StressIncrease: 12.5, FailureAcceleration: 15, EstimatedLifeDays: 162},
		},
		{
			name: "everything maxed",
			in:   WhatIfInput{RPMIncreasePct: 100, LoadIncreasePct: 100, PoorLubrication: true, BaseTemperature: 60},
			// rise 47, stress 80, failure 120, life max(30, 180-min(150,144))
			want: WhatIfResult{TemperatureRise: 47, ProjectedTemperature: 107, StressIncrease: 80, FailureAcceleration: 120, EstimatedLifeDays: 36},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WhatIf(tc.in)
			pairs := [][2]float64{
				{got.TemperatureRise, tc.want.TemperatureRise},
				{got.ProjectedTemperature, tc.want.ProjectedTemperature},
				{got.StressIncrease, tc.want.StressIncrease},
				{got.FailureAcceleration, tc.want.FailureAcceleration},
				{got.EstimatedLifeDays, tc.want.EstimatedLifeDays},
			}
			for _, p := range pairs {
				if !almostEqual(p[0], p[1], 1e-9) {
					t.Errorf("WhatIf = %+v, want %+v", got, tc.want)
					break
				}
			}
		})
	}
}

func TestWhatIf_LifeFloor(t *testing.T) {
	got := WhatIf(WhatIfInput{RPMIncreasePct: 500, LoadIncreasePct: 500, PoorLubrication: true})
	if got.EstimatedLifeDays != 30 {
		t.Errorf("EstimatedLifeDays = %.1f, want floor 30", got.EstimatedLifeDays)
	}
}

// --- ControlChart ---

func TestControlChart(t *testing.T) {
	got := ControlChart([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if got.Count != 8 || got.Mean != 5 || got.StdDev != 2 {
		t.Fatalf("ControlChart = %+v, want mean 5, std 2", got)
	}
	if got.UCL != 11 || got.LCL != -1 {
		t.Errorf("limits = [%.1f, %.1f], want [-1, 11]", got.LCL, got.UCL)
	}
	if len(got.OutOfControl) != 0 {
		t.Errorf("OutOfControl = %v, want none", got.OutOfControl)
	}
}

func TestControlChart_FlagsOutlier(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = 10
	}
	values[19] = 100
	got := ControlChart(values)
	if len(got.OutOfControl) != 1 || got.OutOfControl[0] != 19 {
		t.Errorf("OutOfControl = %v, want [19]", got.OutOfControl)
	}
}

func TestControlChart_Empty(t *testing.T) {
	got := ControlChart(nil)
	if got.Count != 0 || got.OutOfControl == nil {
		t.Errorf("ControlChart(nil) = %+v", got)
	}
}

// --- Histogram ---

func TestHistogram_TorqueBins(t *testing.T) {
	values := []float64{9.9, 10, 14.99, 15, 27, 44.5, 45, 45.1, math.NaN()}
	got := Histogram(values, TorqueBins)

	wantRanges := []string{"10-15", "15-20", "20-25", "25-30", "30-35", "35-40", "40-45"}
	wantCounts := []int{2, 1, 0, 1, 0, 0, 2}
	if len(got.Bins) != len(wantRanges) {
		t.Fatalf("bins: got %d, want %d", len(got.Bins), len(wantRanges))
	}
	for i, b := range got.Bins {
		if b.Range != wantRanges[i] || b.Count != wantCounts[i] {
			t.Errorf("bin %d: got %s=%d, want %s=%d", i, b.Range, b.Count, wantRanges[i], wantCounts[i])
		}
	}
	if got.Below != 1 || got.Above != 1 {
		t.Errorf("outside: got below %d above %d, want 1 / 1", got.Below, got.Above)
	}
	if got.Total != 8 {
		t.Errorf("total: got %d, want 8 (NaN skipped)", got.Total)
	}
}

func TestHistogram_Empty(t *testing.T) {
	got := Histogram(nil, TorqueBins)
	if len(got.Bins) != 7 || got.Total != 0 {
		t.Errorf("empty series: got %d bins total %d, want 7 / 0", len(got.Bins), got.Total)
	}
}

func TestLayoutFor(t *testing.T) {
	l := LayoutFor(0, 5, 5)
	if l.Lower != 0 || l.Width != 1 || l.Count != 5 {
		t.Errorf("LayoutFor(0, 5, 5) = %+v", l)
	}
	if got := Histogram([]float64{0.5, 4.5, 5}, l).Bins[4].Count; got != 2 {
		t.Errorf("last bin count: got %d, want 2 (upper edge inclusive)", got)
	}

	d := LayoutFor(3, 3, 4)
	if d.Lower != 2.5 || d.Upper() != 3.5 {
		t.Errorf("degenerate span: got [%v, %v], want [2.5, 3.5]", d.Lower, d.Upper())
	}
	if err := d.Validate(); err != nil {
		t.Errorf("degenerate layout invalid: %v", err)
	}
}

func TestBinLayout_Validate(t *testing.T) {
	tests := []struct {
		name   string
		layout BinLayout
	}{
		{"zero width", BinLayout{Lower: 0, Width: 0, Count: 3}},
		{"negative width", BinLayout{Lower: 0, Width: -1, Count: 3}},
		{"no bins", BinLayout{Lower: 0, Width: 1, Count: 0}},
		{"too many bins", BinLayout{Lower: 0, Width: 1, Count: 1000}},
		{"infinite lower", BinLayout{Lower: math.Inf(-1), Width: 1, Count: 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.layout.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
	if err := TorqueBins.Validate(); err != nil {
		t.Errorf("TorqueBins: %v", err)
	}
}

// --- Evaluate ---

func TestEvaluate(t *testing.T) {
	r := midpointReading()
	r.MotorTemperature = 90
	r.Vibration.X = 6

	res := Evaluate(r, testLimits, rand.New(rand.NewSource(9)))
	if res.HealthScore != 70 {
		t.Errorf("HealthScore = %d, want 70", res.HealthScore)
	}
	if res.HealthStatus != types.StatusWarning {
		t.Errorf("HealthStatus = %q, want warning", res.HealthStatus)
	}
	if res.AlertCount != 2 || len(res.Violations) != 2 {
		t.Errorf("AlertCount = %d (violations %d), want 2", res.AlertCount, len(res.Violations))
	}
	if res.MachineStatus != types.MachineOverload {
		t.Errorf("MachineStatus = %q, want Overload", res.MachineStatus)
	}
	if res.LoadPercentage != 63 {
		t.Errorf("LoadPercentage = %d, want 63", res.LoadPercentage)
	}
	if len(res.Components) != 4 {
		t.Errorf("Components = %d, want 4", len(res.Components))
	}

	again := Evaluate(r, testLimits, rand.New(rand.NewSource(9)))
	if again.RUL != res.RUL || again.FailureProbability != res.FailureProbability {
		t.Error("Evaluate is not reproducible under the same seed")
	}
}
