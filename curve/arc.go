package curve

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/lattice/utils"
)

// Tolerance used for collinearity and intersection tests, in the same units as the target.
const epsilon = 1e-6

// ArcGenerator fits a straight section, a single circular arc tangent to both headings, and a
// second straight section. The arc is placed so that the shorter of the two straight sections has
// zero length, which gives the largest radius available for the target.
type ArcGenerator struct {
	turningRadius float64
	defaultStep   float64
}

// NewArcGenerator returns an ArcGenerator that rejects arcs tighter than turningRadius. Samples are
// spaced defaultStep apart unless a caller asks for a different step.
func NewArcGenerator(turningRadius, defaultStep float64) (*ArcGenerator, error) {
	if turningRadius <= 0 {
		return nil, errors.Errorf("turning radius %f must be >0", turningRadius)
	}
	if defaultStep <= 0 {
		return nil, errors.Errorf("default step %f must be >0", defaultStep)
	}
	return &ArcGenerator{turningRadius: turningRadius, defaultStep: defaultStep}, nil
}

// TurningRadius returns the minimum radius this generator accepts.
func (g *ArcGenerator) TurningRadius() float64 {
	return g.turningRadius
}

// Generate implements Generator.
func (g *ArcGenerator) Generate(target r2.Point, startDeg, endDeg, step float64) (*Result, error) {
	if !utils.IsFinite(target.X, target.Y, startDeg, endDeg, step) {
		return nil, errors.Errorf("non-finite curve request target=%v start=%f end=%f step=%f", target, startDeg, endDeg, step)
	}
	if step <= 0 {
		step = g.defaultStep
	}
	if target.Norm() < epsilon {
		return nil, ErrInfeasible
	}

	startYaw := utils.DegToRad(startDeg)
	endYaw := utils.DegToRad(endDeg)
	startDir := r2.Point{X: math.Cos(startYaw), Y: math.Sin(startYaw)}
	endDir := r2.Point{X: math.Cos(endYaw), Y: math.Sin(endYaw)}
	turn := utils.WrapToPi(endYaw - startYaw)

	if math.Abs(turn) < epsilon {
		return g.straight(target, startDir, step)
	}
	if math.Abs(turn) > math.Pi/2+epsilon {
		// Turns beyond a right angle need more than one arc.
		return nil, ErrInfeasible
	}

	// Solve startDist*startDir + endDist*endDir = target for the distance along each heading line
	// to the point where the lines cross.
	det := startDir.Cross(endDir)
	startDist := target.Cross(endDir) / det
	endDist := startDir.Cross(target) / det
	if startDist < -epsilon || endDist < -epsilon {
		return nil, ErrInfeasible
	}

	tangentDist := math.Min(startDist, endDist)
	if tangentDist < epsilon {
		return nil, ErrInfeasible
	}
	radius := tangentDist / math.Tan(math.Abs(turn)/2)
	if radius < g.turningRadius-epsilon {
		return nil, ErrInfeasible
	}

	a := &arc{
		startDir:     startDir,
		endDir:       endDir,
		startYaw:     startYaw,
		radius:       radius,
		turnSign:     math.Copysign(1, turn),
		leadIn:       startDist - tangentDist,
		arcLength:    radius * math.Abs(turn),
		leadOut:      endDist - tangentDist,
		intersection: startDir.Mul(startDist),
	}
	a.arcStart = startDir.Mul(a.leadIn)
	a.arcEnd = a.intersection.Add(endDir.Mul(tangentDist))
	a.center = a.arcStart.Add(startDir.Ortho().Mul(a.turnSign * radius))

	return &Result{
		Points:             samplePath(a.total(), step, a.at, target),
		Radius:             radius,
		StartToArcDistance: a.leadIn,
		ArcToEndDistance:   a.leadOut,
	}, nil
}

// straight handles equal start and end headings, which only reach targets on the heading line.
func (g *ArcGenerator) straight(target, dir r2.Point, step float64) (*Result, error) {
	if math.Abs(dir.Cross(target)) > epsilon {
		return nil, ErrInfeasible
	}
	length := dir.Dot(target)
	if length < epsilon {
		return nil, ErrInfeasible
	}
	return &Result{
		Points:             samplePath(length, step, func(d float64) r2.Point { return dir.Mul(d) }, target),
		StartToArcDistance: length,
	}, nil
}

type arc struct {
	startDir, endDir     r2.Point
	startYaw             float64
	radius               float64
	turnSign             float64
	leadIn, arcLength    float64
	leadOut              float64
	intersection, center r2.Point
	arcStart, arcEnd     r2.Point
}

func (a *arc) total() float64 {
	return a.leadIn + a.arcLength + a.leadOut
}

// at returns the position after travelling dist along the path.
func (a *arc) at(dist float64) r2.Point {
	switch {
	case dist <= a.leadIn:
		return a.startDir.Mul(dist)
	case dist <= a.leadIn+a.arcLength:
		yaw := a.startYaw + a.turnSign*(dist-a.leadIn)/a.radius
		offset := r2.Point{X: math.Sin(yaw), Y: -math.Cos(yaw)}.Mul(a.turnSign * a.radius)
		return a.center.Add(offset)
	default:
		return a.arcEnd.Add(a.endDir.Mul(dist - a.leadIn - a.arcLength))
	}
}

// samplePath walks a path of the given length in fixed steps. The final sample is always exactly
// the target so that rounding in the parameterization does not move the endpoint.
func samplePath(length, step float64, at func(float64) r2.Point, target r2.Point) []r2.Point {
	n := int(math.Floor(length/step + epsilon))
	points := make([]r2.Point, 0, n+2)
	for i := 0; i <= n; i++ {
		points = append(points, at(float64(i)*step))
	}
	if length-float64(n)*step < step*epsilon && n > 0 {
		points[len(points)-1] = target
	} else {
		points = append(points, target)
	}
	return points
}
