// Package lattice generates a minimal, symmetry reduced set of motion primitives for a state
// lattice planner.
//
// Primitives are searched for from each start heading in [0°, 90°) outward over square rings of
// lattice points. A candidate is kept only if no part of it passes through an already kept
// endpoint with a similar heading. The kept primitives are then mirrored into the remaining
// quadrants.
package lattice

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/lattice/utils"
)

// Angles closer than this, in degrees, are the same heading.
const headingTolerance = 1e-6

// targetWindow is how far, in degrees, a primitive may turn away from its start heading.
const targetWindow = 90.

// HeadingSet is the set of headings a lattice allows, in degrees. Headings point from the origin
// to the lattice points on the boundary of a square ring, so every heading ends on a cell.
type HeadingSet struct {
	angles []float64
	sorted []float64
}

// DiscretizeHeadings returns the n headings produced by walking the boundary of a square ring
// centred on the origin with half-width n/8.
func DiscretizeHeadings(n int) (HeadingSet, error) {
	if n < 8 || n%8 != 0 {
		return HeadingSet{}, errors.Wrapf(ErrInvalidHeadingCount, "got %d", n)
	}
	maxVal := ((n+4)/4 - 1) / 2

	angles := make([]float64, 0, n)
	toDeg := func(x, y int) float64 {
		return utils.RadToDeg(math.Atan2(float64(y), float64(x)))
	}
	for i := -maxVal; i <= maxVal; i++ {
		angles = append(angles, toDeg(i, -maxVal), toDeg(i, maxVal))
		if i != maxVal && i != -maxVal {
			angles = append(angles, toDeg(-maxVal, i), toDeg(maxVal, i))
		}
	}

	sorted := append([]float64(nil), angles...)
	sort.Float64s(sorted)
	return HeadingSet{angles: angles, sorted: sorted}, nil
}

// Len returns the number of headings.
func (hs HeadingSet) Len() int {
	return len(hs.angles)
}

// Angles returns the headings in ring walk order.
func (hs HeadingSet) Angles() []float64 {
	return append([]float64(nil), hs.angles...)
}

// Sorted returns the headings in ascending order.
func (hs HeadingSet) Sorted() []float64 {
	return append([]float64(nil), hs.sorted...)
}

// Index returns the position of angle in Sorted, accounting for wraparound.
func (hs HeadingSet) Index(angle float64) (int, bool) {
	for i, h := range hs.sorted {
		if utils.AngleDiffDeg(h, angle) < headingTolerance {
			return i, true
		}
	}
	return -1, false
}

// Snap returns the member of the set equal to angle within tolerance. Angles that are not members
// are returned normalized to (-180, 180].
func (hs HeadingSet) Snap(angle float64) float64 {
	if i, ok := hs.Index(angle); ok {
		return hs.sorted[i]
	}
	return utils.WrapTo180(angle)
}

// Canonical returns the start headings primitives are searched from, those in [0°, 90°). All
// others are reached by symmetry.
func (hs HeadingSet) Canonical() []float64 {
	return lo.Filter(hs.sorted, func(h float64, _ int) bool {
		return h > -headingTolerance && h < 90-headingTolerance
	})
}

// TargetHeadings returns the headings a primitive leaving start may arrive at, in the order they
// are tried.
func (hs HeadingSet) TargetHeadings(start float64) []float64 {
	targets := lo.Filter(hs.sorted, func(h float64, _ int) bool {
		return math.Abs(start-h) <= targetWindow+headingTolerance
	})
	less := TargetHeadingLess(start)
	sort.SliceStable(targets, func(i, j int) bool {
		return less(targets[i], targets[j])
	})
	return targets
}

// TargetHeadingLess orders headings by how little they turn away from start. Equal turns are
// broken by preferring the larger heading. The order decides which of two redundant candidates is
// kept, so it must not change.
func TargetHeadingLess(start float64) func(a, b float64) bool {
	return func(a, b float64) bool {
		da, db := math.Abs(a-start), math.Abs(b-start)
		if da != db {
			return da < db
		}
		return a > b
	}
}
