package compute

import (
	"fmt"
	"math"
	"strconv"
)

// TorqueBins is the dashboard's torque histogram layout: seven 5 Nm bins
// from 10 to 45.
var TorqueBins = BinLayout{Lower: 10, Width: 5, Count: 7}

// BinLayout describes Count equal-width bins starting at Lower.
type BinLayout struct {
	Lower float64 `json:"lower"`
	Width float64 `json:"width"`
	Count int     `json:"count"`
}

// Upper is the right edge of the last bin.
func (b BinLayout) Upper() float64 { return b.Lower + b.Width*float64(b.Count) }

// Validate rejects layouts that cannot hold a value.
func (b BinLayout) Validate() error {
	if b.Width <= 0 || math.IsNaN(b.Width) || math.IsInf(b.Width, 0) {
		return fmt.Errorf("bin width must be a positive number, got %v", b.Width)
	}
	if b.Count < 1 || b.Count > maxBins {
		return fmt.Errorf("bin count must be in [1, %d], got %d", maxBins, b.Count)
	}
	if math.IsNaN(b.Lower) || math.IsInf(b.Lower, 0) {
		return fmt.Errorf("bin lower edge must be finite, got %v", b.Lower)
	}
	return nil
}

const maxBins = 200

// Bin is one histogram bucket. Bins are half-open [Lower, Upper) except the
// last, which also holds its upper edge.
type Bin struct {
	Range string  `json:"range"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// HistogramResult holds the binned counts plus the values that fell outside
// the layout.
type HistogramResult struct {
	Bins  []Bin `json:"bins"`
	Below int   `json:"below"`
	Above int   `json:"above"`
	Total int   `json:"total"`
}

// Histogram counts values into layout. NaN values are skipped. The layout
// must already be valid.
func Histogram(values []float64, layout BinLayout) HistogramResult {
	out := HistogramResult{Bins: make([]Bin, layout.Count)}
	for i := range out.Bins {
		lo := layout.Lower + layout.Width*float64(i)
		hi := lo + layout.Width
		out.Bins[i] = Bin{Range: edge(lo) + "-" + edge(hi), Lower: lo, Upper: hi}
	}

	upper := layout.Upper()
	for _, v := range values {
		switch {
		case math.IsNaN(v):
			continue
		case v < layout.Lower:
			out.Below++
		case v > upper:
			out.Above++
		default:
			i := min(int((v-layout.Lower)/layout.Width), layout.Count-1)
			out.Bins[i].Count++
		}
		out.Total++
	}
	return out
}

// LayoutFor picks a layout spanning [lo, hi] in count bins. A degenerate
// span widens to one unit around lo.
func LayoutFor(lo, hi float64, count int) BinLayout {
	if hi <= lo {
		lo, hi = lo-0.5, lo+0.5
	}
	return BinLayout{Lower: lo, Width: (hi - lo) / float64(count), Count: count}
}

// edge formats a bin edge to at most two decimals.
func edge(v float64) string { return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) }
