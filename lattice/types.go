package lattice

import (
	"github.com/golang/geo/r2"
)

// Endpoint is a pose a primitive may terminate at. Heading is in degrees.
type Endpoint struct {
	X       float64
	Y       float64
	Heading float64
}

// Point returns the position of the endpoint.
func (e Endpoint) Point() r2.Point {
	return r2.Point{X: e.X, Y: e.Y}
}

// Pose is a single sample along a trajectory. Yaw is in radians.
type Pose struct {
	X   float64
	Y   float64
	Yaw float64
}

// Trajectory is one motion primitive. Headings are in degrees and lengths are in the units of the
// grid separation.
type Trajectory struct {
	StartHeading   float64
	EndHeading     float64
	Radius         float64
	TotalLength    float64
	ArcLength      float64
	StraightLength float64
	// LeftTurn is set when the primitive turns counter-clockwise.
	LeftTurn bool
	Poses    []Pose
}
