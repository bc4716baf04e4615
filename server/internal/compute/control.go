package compute

import "math"

// controlSigma is the distance of the control limits from the mean, in
// standard deviations.
const controlSigma = 3.0

// ControlStats summarises a series for a Shewhart control chart.
type ControlStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	UCL    float64 `json:"ucl"`
	LCL    float64 `json:"lcl"`

	// OutOfControl holds the indices of points outside [LCL, UCL].
	OutOfControl []int `json:"out_of_control"`
}

// ControlChart computes mean, population standard deviation and ±3σ control
// limits for values. An empty series returns the zero value with a non-nil
// OutOfControl slice.
func ControlChart(values []float64) ControlStats {
	out := ControlStats{Count: len(values), OutOfControl: []int{}}
	if len(values) == 0 {
		return out
	}

	out.Mean = mean(values)
	out.StdDev = stdDev(values, out.Mean)
	out.UCL = out.Mean + controlSigma*out.StdDev
	out.LCL = out.Mean - controlSigma*out.StdDev

	for i, v := range values {
		if v > out.UCL || v < out.LCL {
			out.OutOfControl = append(out.OutOfControl, i)
		}
	}
	return out
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdDev(values []float64, mean float64) float64 {
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(values)))
}
