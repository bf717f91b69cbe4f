// Package utils contains angle helpers shared by the lattice packages.
package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// AngleDiffDeg returns the closest difference from the two given
// angles. The arguments are commutative.
func AngleDiffDeg(a1, a2 float64) float64 {
	return float64(180) - math.Abs(math.Abs(math.Mod(a1-a2, 360))-float64(180))
}

// WrapToPi returns a given angle in the (-pi, pi] range.
func WrapToPi(theta float64) float64 {
	wrapped := theta - 2*math.Pi*math.Floor((theta+math.Pi)/(2*math.Pi))
	if wrapped == -math.Pi {
		return math.Pi
	}
	// -0 becomes 0
	return wrapped + 0
}

// WrapTo180 returns a given angle in degrees in the (-180, 180] range.
func WrapTo180(deg float64) float64 {
	wrapped := deg - 360*math.Floor((deg+180)/360)
	if wrapped == -180 {
		return 180
	}
	return wrapped + 0
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
