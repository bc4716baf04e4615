package compute

import "github.com/motortwin/motortwin/pkg/types"

// Violation is one monitored parameter found outside its limit.
type Violation struct {
	Limit types.Limit
	Value float64
}

// Above reports whether the breach is on the upper side.
func (v Violation) Above() bool {
	return v.Value > v.Limit.Maximum
}

// Violations returns, in limit-table order, every monitored parameter whose
// value lies strictly outside [minimum, maximum]. Limits without a mapped
// reading field are skipped.
func Violations(r types.Reading, limits []types.Limit) []Violation {
	var out []Violation
	for _, l := range limits {
		v, ok := monitoredValue(r, l.Parameter)
		if !ok {
			continue
		}
		if v > l.Maximum || v < l.Minimum {
			out = append(out, Violation{Limit: l, Value: v})
		}
	}
	return out
}

// AlertCount returns the number of limit breaches in r.
func AlertCount(r types.Reading, limits []types.Limit) int {
	return len(Violations(r, limits))
}
