package lattice

import (
	"github.com/golang/geo/r2"
)

// LevelPoints returns the lattice points on the boundary of the ring at Chebyshev distance
// level*sep from the origin, restricted to the first quadrant. Points alternate between the
// vertical and horizontal edges moving away from the axes, and end at the corner.
func LevelPoints(level int, sep float64) []r2.Point {
	if level < 0 {
		return nil
	}
	maxCoord := sep * float64(level)

	points := make([]r2.Point, 0, 2*level+1)
	for i := 0; i < level; i++ {
		varying := sep * float64(i)
		points = append(points,
			r2.Point{X: maxCoord, Y: varying},
			r2.Point{X: varying, Y: maxCoord},
		)
	}
	return append(points, r2.Point{X: maxCoord, Y: maxCoord})
}
