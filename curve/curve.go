// Package curve defines how a path is fit between two headings and a target point, and provides an
// arc-and-straight generator bounded by a minimum turning radius.
package curve

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// ErrInfeasible is returned when no path satisfying the turning radius connects the requested
// headings and target.
var ErrInfeasible = errors.New("no feasible curve")

// Generator fits a path from the origin, facing startDeg, to target, arriving facing endDeg.
// Implementations must be pure functions of their inputs so that callers may invoke them
// concurrently. A step <= 0 selects the implementation's default sampling step.
type Generator interface {
	Generate(target r2.Point, startDeg, endDeg, step float64) (*Result, error)
}

// Result is a sampled path along with the geometry that produced it.
type Result struct {
	// Points are samples from the origin through the target, inclusive.
	Points []r2.Point
	// Radius of the arc section. Zero for straight paths.
	Radius float64
	// StartToArcDistance is the length of the straight section before the arc.
	StartToArcDistance float64
	// ArcToEndDistance is the length of the straight section after the arc.
	ArcToEndDistance float64
}

// Feasible returns whether the result holds a path. A single point is a path with no segments.
func (r *Result) Feasible() bool {
	return r != nil && len(r.Points) > 0
}
