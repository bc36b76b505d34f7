package fluxstats

import (
	"fmt"
	"math"

	"github.com/codahale/hdrhistogram"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/helioflux/pkg/emath"
)

// maxQuanta bounds the histogram; anything bigger (in quantum units) is
// counted as an overflow, and only shows up in Max.
const maxQuanta = 1e12

// A Summary describes the finite values in a grid. NaN and infinite values
// (off-disk pixels, limb singularities) are counted but otherwise ignored.
type Summary struct {
	Valid   int
	Invalid int

	Sum    float64
	Mean   float64
	StdDev float64

	// Percentiles of |value|, in the same units as the grid but only as
	// precise as the quantum they were binned with.
	P50, P90, P99 float64
	Max           float64

	Overflow int // Values too big for the histogram
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d (+%d invalid), sum=%.4g, mean=%.4g, sd=%.4g, |v| p50=%.4g p90=%.4g p99=%.4g max=%.4g",
		s.Valid, s.Invalid, s.Sum, s.Mean, s.StdDev, s.P50, s.P90, s.P99, s.Max)
}

// Summarize computes a Summary of g. Percentiles are tracked in units of
// quantum, to three significant figures.
func Summarize(g emath.FloatGrid, quantum float64) (Summary, error) {
	if !(quantum > 0) {
		return Summary{}, fmt.Errorf("quantum must be > 0, got %v", quantum)
	}

	vals := g.Finite()
	s := Summary{
		Valid:   len(vals),
		Invalid: len(g.Values()) - len(vals),
	}
	if len(vals) == 0 {
		return s, nil
	}

	s.Sum = floats.Sum(vals)
	s.Mean, s.StdDev = stat.MeanStdDev(vals, nil)
	if len(vals) == 1 {
		s.StdDev = 0 // MeanStdDev gives NaN for a single sample
	}

	h := hdrhistogram.New(1, int64(maxQuanta), 3)
	for _, v := range vals {
		q := math.Round(math.Abs(v) / quantum)
		s.Max = math.Max(s.Max, math.Abs(v))
		if q > maxQuanta {
			s.Overflow++
			continue
		}
		if err := h.RecordValue(int64(q)); err != nil {
			s.Overflow++
		}
	}

	// The histogram reports the top of each bucket, which can overshoot
	s.P50 = math.Min(float64(h.ValueAtQuantile(50))*quantum, s.Max)
	s.P90 = math.Min(float64(h.ValueAtQuantile(90))*quantum, s.Max)
	s.P99 = math.Min(float64(h.ValueAtQuantile(99))*quantum, s.Max)

	return s, nil
}

// FluxTotals are the usual whole-disk flux numbers: net (signed) flux,
// unsigned flux, and the flux of each polarity.
type FluxTotals struct {
	Net      float64
	Unsigned float64
	Positive float64
	Negative float64
}

func (ft FluxTotals) String() string {
	return fmt.Sprintf("net=%.4g unsigned=%.4g (+%.4g / %.4g)", ft.Net, ft.Unsigned, ft.Positive, ft.Negative)
}

// Totals adds up a flux grid, skipping off-disk and singular pixels.
func Totals(flux emath.FloatGrid) FluxTotals {
	ft := FluxTotals{}
	for _, v := range flux.Finite() {
		if v > 0 {
			ft.Positive += v
		} else {
			ft.Negative += v
		}
	}
	ft.Net = ft.Positive + ft.Negative
	ft.Unsigned = ft.Positive - ft.Negative
	return ft
}
