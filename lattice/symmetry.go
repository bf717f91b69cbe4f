package lattice

import (
	"math"

	"go.viam.com/lattice/utils"
)

// Quadrant describes how a primitive found in the first quadrant is mirrored into another.
type Quadrant struct {
	Name string
	// ReflectX negates x coordinates, ReflectY negates y coordinates.
	ReflectX bool
	ReflectY bool
	// Heading maps a start or end heading in degrees.
	Heading func(deg float64) float64
	// Yaw maps a pose yaw in radians.
	Yaw func(rad float64) float64
}

var (
	// Q1 is the identity.
	Q1 = Quadrant{
		Name:    "Q1",
		Heading: func(deg float64) float64 { return deg },
		Yaw:     func(rad float64) float64 { return rad },
	}
	// Q2 mirrors across the y axis.
	Q2 = Quadrant{
		Name:     "Q2",
		ReflectX: true,
		Heading:  func(deg float64) float64 { return 180 - deg },
		Yaw:      func(rad float64) float64 { return math.Pi - rad },
	}
	// Q3 mirrors through the origin.
	Q3 = Quadrant{
		Name:     "Q3",
		ReflectX: true,
		ReflectY: true,
		Heading:  func(deg float64) float64 { return deg - 180 },
		Yaw:      func(rad float64) float64 { return rad - math.Pi },
	}
	// Q4 mirrors across the x axis.
	Q4 = Quadrant{
		Name:     "Q4",
		ReflectY: true,
		Heading:  func(deg float64) float64 { return -deg },
		Yaw:      func(rad float64) float64 { return -rad },
	}
)

// QuadrantsFor returns the quadrants a first quadrant primitive from start to end is mirrored
// into. Straight primitives along an axis are their own mirror image across that axis, so they are
// only copied once across it.
func QuadrantsFor(start, end float64) []Quadrant {
	switch {
	case sameHeading(start, 0) && sameHeading(end, 0):
		return []Quadrant{Q1, Q2}
	case sameHeading(start, 90) && sameHeading(end, 90):
		return []Quadrant{Q1, Q4}
	default:
		return []Quadrant{Q1, Q2, Q3, Q4}
	}
}

func sameHeading(a, b float64) bool {
	return utils.AngleDiffDeg(a, b) < headingTolerance
}

// Apply returns a mirrored copy of t. Headings are snapped onto hs and yaws wrapped into (-pi, pi].
func (q Quadrant) Apply(t Trajectory, hs HeadingSet) Trajectory {
	out := t
	out.StartHeading = hs.Snap(q.Heading(t.StartHeading))
	out.EndHeading = hs.Snap(q.Heading(t.EndHeading))
	out.LeftTurn = isLeftTurn(out.StartHeading, out.EndHeading)

	out.Poses = make([]Pose, len(t.Poses))
	for i, p := range t.Poses {
		if q.ReflectX {
			p.X = negate(p.X)
		}
		if q.ReflectY {
			p.Y = negate(p.Y)
		}
		p.Yaw = utils.WrapToPi(q.Yaw(p.Yaw))
		out.Poses[i] = p
	}
	return out
}

func isLeftTurn(start, end float64) bool {
	return utils.WrapTo180(end-start) > headingTolerance
}

// negate avoids producing negative zero.
func negate(v float64) float64 {
	if v == 0 {
		return 0
	}
	return -v
}
