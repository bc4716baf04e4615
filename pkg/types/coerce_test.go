package types

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"85", 85},
		{" 12.5 ", 12.5},
		{"-3", -3},
		{".5", 0.5},
		{"1e2", 100},
		{"85°C", 85},
		{"abc", 0},
		{"", 0},
		{"NaN", 0},
		{"Infinity", 0},
		{"1e400", 0},
	}
	for _, tc := range tests {
		if got := ParseNumber(tc.in); got != tc.want {
			t.Errorf("ParseNumber(%q): got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLimit_UnmarshalJSON_Coerces(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		min, max float64
	}{
		{"numbers", `{"parameter":"torque","minimum":5,"maximum":45}`, 5, 45},
		{"numeric strings", `{"parameter":"torque","minimum":"5","maximum":"45.5"}`, 5, 45.5},
		{"garbage string", `{"parameter":"torque","minimum":"abc","maximum":45}`, 0, 45},
		{"empty string", `{"parameter":"torque","minimum":"","maximum":45}`, 0, 45},
		{"null and absent", `{"parameter":"torque","minimum":null}`, 0, 0},
		{"wrong type", `{"parameter":"torque","minimum":true,"maximum":[1]}`, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var l Limit
			if err := json.Unmarshal([]byte(tc.body), &l); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if l.Parameter != Torque {
				t.Errorf("parameter: got %q, want torque", l.Parameter)
			}
			if l.Minimum != tc.min || l.Maximum != tc.max {
				t.Errorf("bounds: got %v..%v, want %v..%v", l.Minimum, l.Maximum, tc.min, tc.max)
			}
		})
	}
}

func TestLimit_UnmarshalJSON_KeepsText(t *testing.T) {
	var l Limit
	body := `{"parameter":"voltage","minimum":380,"maximum":420,"unit":"V","description":"Voltage"}`
	if err := json.Unmarshal([]byte(body), &l); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := Limit{Parameter: Voltage, Minimum: 380, Maximum: 420, Unit: "V", Description: "Voltage"}
	if l != want {
		t.Errorf("got %+v, want %+v", l, want)
	}
}

func TestLimit_UnmarshalJSON_Malformed(t *testing.T) {
	var l Limit
	if err := json.Unmarshal([]byte(`{"parameter": 7}`), &l); err == nil {
		t.Error("expected error for non-string parameter, got nil")
	}
}

func TestLimit_UnmarshalYAML_Coerces(t *testing.T) {
	var rows []Limit
	doc := `
- {parameter: torque, minimum: "5", maximum: lots}
- {parameter: current, minimum: , maximum: 25}
- {parameter: power, minimum: .inf, maximum: 15kW}
`
	if err := yaml.Unmarshal([]byte(doc), &rows); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := [][2]float64{{5, 0}, {0, 25}, {0, 15}}
	for i, w := range want {
		if rows[i].Minimum != w[0] || rows[i].Maximum != w[1] {
			t.Errorf("row %d: got %v..%v, want %v..%v", i, rows[i].Minimum, rows[i].Maximum, w[0], w[1])
		}
	}
}
