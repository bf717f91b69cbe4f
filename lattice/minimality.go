package lattice

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/lattice/utils"
)

// AngleDifference returns the shorter arc between two angles in radians, in [0, pi].
func AngleDifference(a, b float64) float64 {
	difference := math.Mod(math.Abs(a-b), 2*math.Pi)
	if difference > math.Pi {
		difference = 2*math.Pi - difference
	}
	return difference
}

// PointToSegmentDistance returns the minimum distance from q to the segment p1-p2.
func PointToSegmentDistance(p1, p2, q r2.Point) float64 {
	seg := p2.Sub(p1)
	l2 := seg.Dot(seg)
	if l2 == 0 {
		return p1.Sub(q).Norm()
	}

	t := math.Max(0, math.Min(1, q.Sub(p1).Dot(seg)/l2))
	projected := p1.Add(seg.Mul(t))
	return q.Sub(projected).Norm()
}

// MinimalityFilter decides whether a candidate path adds anything to the primitives already kept
// for a start heading.
type MinimalityFilter struct {
	distanceThreshold float64
	rotationThreshold float64
}

// NewMinimalityFilter returns a filter that treats a path as redundant when it passes within half
// a cell of a kept endpoint while heading within half a heading step of it.
func NewMinimalityFilter(gridSeparation float64, numberOfHeadings int) *MinimalityFilter {
	return &MinimalityFilter{
		distanceThreshold: 0.5 * gridSeparation,
		rotationThreshold: 0.5 * utils.DegToRad(360/float64(numberOfHeadings)),
	}
}

// DistanceThreshold returns the distance below which a path is near an endpoint.
func (f *MinimalityFilter) DistanceThreshold() float64 {
	return f.distanceThreshold
}

// RotationThreshold returns the angle, in radians, below which a path is aligned with an endpoint.
func (f *MinimalityFilter) RotationThreshold() float64 {
	return f.rotationThreshold
}

// IsMinimal returns false if any segment of path passes near an accepted endpoint while heading
// the same way. Only the accepted endpoints are compared against, not the paths that reached them.
// A path with fewer than two points has no segments and is always minimal.
func (f *MinimalityFilter) IsMinimal(path []r2.Point, accepted []Endpoint) bool {
	if len(accepted) == 0 {
		return true
	}
	for i := 0; i+1 < len(path); i++ {
		p1, p2 := path[i], path[i+1]
		yaw := math.Atan2(p2.Y-p1.Y, p2.X-p1.X)

		for _, prior := range accepted {
			if PointToSegmentDistance(p1, p2, prior.Point()) < f.distanceThreshold &&
				AngleDifference(yaw, utils.DegToRad(prior.Heading)) < f.rotationThreshold {
				return false
			}
		}
	}
	return true
}
