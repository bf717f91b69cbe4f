package lattice

import (
	"context"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"

	"go.viam.com/lattice/config"
	"go.viam.com/lattice/curve"
	"go.viam.com/lattice/logging"
	"go.viam.com/lattice/utils"
)

// poseDecimals is the precision sample coordinates are rounded to.
const poseDecimals = 5

// PrimitiveSet is the full table of motion primitives, keyed by start heading in degrees.
type PrimitiveSet struct {
	headings     []float64
	trajectories map[float64][]Trajectory
}

// Headings returns the start headings that have primitives, in ascending order.
func (ps *PrimitiveSet) Headings() []float64 {
	return append([]float64(nil), ps.headings...)
}

// Trajectories returns a copy of the primitives leaving start heading h.
func (ps *PrimitiveSet) Trajectories(h float64) []Trajectory {
	list, ok := ps.trajectories[h]
	if !ok {
		return nil
	}
	out := make([]Trajectory, len(list))
	for i, t := range list {
		t.Poses = append([]Pose(nil), t.Poses...)
		out[i] = t
	}
	return out
}

// Len returns the number of primitives in the set.
func (ps *PrimitiveSet) Len() int {
	var n int
	for _, list := range ps.trajectories {
		n += len(list)
	}
	return n
}

// All returns every primitive ordered by start heading.
func (ps *PrimitiveSet) All() []Trajectory {
	all := make([]Trajectory, 0, ps.Len())
	for _, h := range ps.headings {
		all = append(all, ps.Trajectories(h)...)
	}
	return all
}

func (ps *PrimitiveSet) add(t Trajectory) {
	if _, ok := ps.trajectories[t.StartHeading]; !ok {
		ps.headings = append(ps.headings, t.StartHeading)
	}
	ps.trajectories[t.StartHeading] = append(ps.trajectories[t.StartHeading], t)
}

// Expander regenerates accepted endpoints at table resolution and mirrors them into every
// quadrant.
type Expander struct {
	cfg      *config.Config
	headings HeadingSet
	curves   curve.Generator
	logger   logging.Logger
}

// NewExpander returns an Expander that regenerates primitives with curves.
func NewExpander(cfg *config.Config, headings HeadingSet, curves curve.Generator, logger logging.Logger) *Expander {
	return &Expander{cfg: cfg, headings: headings, curves: curves, logger: logger}
}

// Expand turns the spanning set into the full primitive table. The entries for 90° are derived
// from those for 0°.
func (e *Expander) Expand(ctx context.Context, set *SpanningSet) (*PrimitiveSet, error) {
	starts := set.Headings()
	endpoints := make(map[float64][]Endpoint, len(starts)+1)
	for _, s := range starts {
		endpoints[s] = set.Endpoints(s)
	}
	if zero, ok := e.headings.Index(0); ok {
		zeroHeading := e.headings.Sorted()[zero]
		if list, ok := endpoints[zeroHeading]; ok {
			ninety := e.headings.Snap(90)
			if _, exists := endpoints[ninety]; !exists {
				starts = append(starts, ninety)
			}
			endpoints[ninety] = ReflectToNinety(list)
		}
	}
	sort.Float64s(starts)

	out := &PrimitiveSet{trajectories: make(map[float64][]Trajectory)}
	for _, start := range starts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, end := range endpoints[start] {
			base, err := e.regenerate(start, end)
			if err != nil {
				return nil, err
			}
			for _, q := range QuadrantsFor(start, end.Heading) {
				out.add(q.Apply(base, e.headings))
			}
		}
	}
	sort.Float64s(out.headings)

	e.logger.Infow("primitives expanded", "start_headings", len(out.headings), "trajectories", out.Len())
	return out, nil
}

func (e *Expander) regenerate(start float64, end Endpoint) (Trajectory, error) {
	res, err := e.curves.Generate(end.Point(), start, end.Heading, e.cfg.GridSeparation)
	if err == nil && !res.Feasible() {
		err = curve.ErrInfeasible
	}
	if err != nil {
		return Trajectory{}, NewRegenerationError(start, end, err)
	}
	if !finitePath(res) {
		return Trajectory{}, NewRegenerationError(start, end, ErrNonFiniteGeometry)
	}

	poses := make([]Pose, len(res.Points))
	for i, p := range res.Points {
		poses[i] = Pose{X: roundCoord(p.X), Y: roundCoord(p.Y)}
	}
	for i := 0; i+1 < len(poses); i++ {
		poses[i].Yaw = math.Atan2(poses[i+1].Y-poses[i].Y, poses[i+1].X-poses[i].X)
	}
	poses[len(poses)-1].Yaw = utils.DegToRad(end.Heading)

	arcLength := 2 * math.Pi * res.Radius * math.Abs(start-end.Heading) / 360
	straightLength := res.StartToArcDistance + res.ArcToEndDistance
	return Trajectory{
		StartHeading:   start,
		EndHeading:     end.Heading,
		Radius:         res.Radius,
		TotalLength:    arcLength + straightLength,
		ArcLength:      arcLength,
		StraightLength: straightLength,
		LeftTurn:       isLeftTurn(start, end.Heading),
		Poses:          poses,
	}, nil
}

// roundCoord rounds to poseDecimals, folding negative zero into zero.
func roundCoord(v float64) float64 {
	return scalar.Round(v, poseDecimals) + 0
}
