package lattice

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestAngleDifference(t *testing.T) {
	test.That(t, AngleDifference(0, 0), test.ShouldEqual, 0.)
	test.That(t, AngleDifference(0, math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, AngleDifference(0.1, 2*math.Pi-0.1), test.ShouldAlmostEqual, 0.2)
	test.That(t, AngleDifference(-math.Pi+0.1, math.Pi-0.1), test.ShouldAlmostEqual, 0.2)

	for a := -3 * math.Pi; a <= 3*math.Pi; a += 0.37 {
		for b := -3 * math.Pi; b <= 3*math.Pi; b += 0.41 {
			d := AngleDifference(a, b)
			test.That(t, d, test.ShouldBeGreaterThanOrEqualTo, 0)
			test.That(t, d, test.ShouldBeLessThanOrEqualTo, math.Pi)
			test.That(t, AngleDifference(b, a), test.ShouldAlmostEqual, d)
		}
	}
}

func TestPointToSegmentDistance(t *testing.T) {
	p1 := r2.Point{}
	p2 := r2.Point{X: 1}

	t.Run("perpendicular", func(t *testing.T) {
		test.That(t, PointToSegmentDistance(p1, p2, r2.Point{X: 0.5, Y: 1}), test.ShouldAlmostEqual, 1)
		test.That(t, PointToSegmentDistance(p1, p2, r2.Point{X: 0.25, Y: -0.5}), test.ShouldAlmostEqual, 0.5)
	})

	t.Run("clamped to endpoints", func(t *testing.T) {
		test.That(t, PointToSegmentDistance(p1, p2, r2.Point{X: 2}), test.ShouldAlmostEqual, 1)
		test.That(t, PointToSegmentDistance(p1, p2, r2.Point{X: -3, Y: 4}), test.ShouldAlmostEqual, 5)
	})

	t.Run("on segment", func(t *testing.T) {
		test.That(t, PointToSegmentDistance(p1, p2, r2.Point{X: 0.7}), test.ShouldEqual, 0.)
	})

	t.Run("zero length", func(t *testing.T) {
		p := r2.Point{X: 1, Y: 1}
		test.That(t, PointToSegmentDistance(p, p, r2.Point{X: 4, Y: 5}), test.ShouldAlmostEqual, 5)
	})
}

func TestMinimalityFilter(t *testing.T) {
	f := NewMinimalityFilter(0.1, 16)
	test.That(t, f.DistanceThreshold(), test.ShouldAlmostEqual, 0.05)
	test.That(t, f.RotationThreshold(), test.ShouldAlmostEqual, math.Pi/16)

	straight := []r2.Point{{}, {X: 0.1}, {X: 0.2}, {X: 0.3}}

	test.That(t, f.IsMinimal(straight, nil), test.ShouldBeTrue)
	test.That(t, f.IsMinimal(straight, []Endpoint{{X: 0.2, Heading: 0}}), test.ShouldBeFalse)
	test.That(t, f.IsMinimal(straight, []Endpoint{{X: 0.2, Y: 0.04, Heading: 5}}), test.ShouldBeFalse)

	// Near but turned away.
	test.That(t, f.IsMinimal(straight, []Endpoint{{X: 0.2, Heading: 90}}), test.ShouldBeTrue)
	test.That(t, f.IsMinimal(straight, []Endpoint{{X: 0.2, Heading: 15}}), test.ShouldBeTrue)
	// Aligned but far.
	test.That(t, f.IsMinimal(straight, []Endpoint{{X: 0.2, Y: 0.1, Heading: 0}}), test.ShouldBeTrue)
	test.That(t, f.IsMinimal(straight, []Endpoint{{X: 0.4}}), test.ShouldBeTrue)
	// Wraps at 360.
	test.That(t, f.IsMinimal(straight, []Endpoint{{X: 0.1, Heading: 359}}), test.ShouldBeFalse)

	test.That(t, f.IsMinimal([]r2.Point{{}}, []Endpoint{{}}), test.ShouldBeTrue)
}

func TestMinimalityFilterChecksLastSegment(t *testing.T) {
	f := NewMinimalityFilter(0.1, 16)
	path := []r2.Point{{}, {X: 0.1}, {X: 0.2}}
	test.That(t, f.IsMinimal(path, []Endpoint{{X: 0.2, Y: 0.01}}), test.ShouldBeFalse)
}
