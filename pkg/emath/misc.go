package emath

import "math"

// Some functions that only operate on basic types, that are useful

const (
	ArcsecPerArcmin = 60.0
	ArcminPerDegree = 60.0
)

func Deg2Rad(d float64) float64 { return d * math.Pi / 180.0 }
func Rad2Deg(r float64) float64 { return r * 180.0 / math.Pi }

func ArcsecToArcmin(a float64) float64 { return a / ArcsecPerArcmin }
func ArcminToDeg(a float64) float64    { return a / ArcminPerDegree }

// Clamp1 pins v into [-1,1], so rounding noise can't push asin/acos into NaN.
func Clamp1(v float64) float64 {
	if v > 1 {
		return 1
	} else if v < -1 {
		return -1
	}
	return v
}
