package lattice

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestQuadrantsFor(t *testing.T) {
	names := func(qs []Quadrant) []string {
		out := make([]string, 0, len(qs))
		for _, q := range qs {
			out = append(out, q.Name)
		}
		return out
	}
	test.That(t, names(QuadrantsFor(0, 0)), test.ShouldResemble, []string{"Q1", "Q2"})
	test.That(t, names(QuadrantsFor(1e-9, -1e-9)), test.ShouldResemble, []string{"Q1", "Q2"})
	test.That(t, names(QuadrantsFor(90, 90)), test.ShouldResemble, []string{"Q1", "Q4"})
	test.That(t, names(QuadrantsFor(0, 45)), test.ShouldResemble, []string{"Q1", "Q2", "Q3", "Q4"})
	test.That(t, names(QuadrantsFor(90, 45)), test.ShouldResemble, []string{"Q1", "Q2", "Q3", "Q4"})
	test.That(t, names(QuadrantsFor(45, 45)), test.ShouldResemble, []string{"Q1", "Q2", "Q3", "Q4"})
}

func TestQuadrantApply(t *testing.T) {
	hs, err := DiscretizeHeadings(8)
	test.That(t, err, test.ShouldBeNil)

	base := Trajectory{
		StartHeading: 0,
		EndHeading:   45,
		Radius:       1,
		LeftTurn:     true,
		Poses: []Pose{
			{X: 0, Y: 0, Yaw: 0},
			{X: 1, Y: 0.5, Yaw: math.Pi / 4},
		},
	}

	t.Run("Q1", func(t *testing.T) {
		out := Q1.Apply(base, hs)
		test.That(t, out, test.ShouldResemble, base)
	})

	t.Run("Q2", func(t *testing.T) {
		out := Q2.Apply(base, hs)
		test.That(t, out.StartHeading, test.ShouldEqual, 180.)
		test.That(t, out.EndHeading, test.ShouldEqual, 135.)
		test.That(t, out.LeftTurn, test.ShouldBeFalse)
		test.That(t, out.Radius, test.ShouldEqual, 1.)
		test.That(t, math.Signbit(out.Poses[0].X), test.ShouldBeFalse)
		test.That(t, out.Poses[0].Yaw, test.ShouldAlmostEqual, math.Pi)
		test.That(t, out.Poses[1].X, test.ShouldEqual, -1.)
		test.That(t, out.Poses[1].Y, test.ShouldEqual, 0.5)
		test.That(t, out.Poses[1].Yaw, test.ShouldAlmostEqual, 3*math.Pi/4)
	})

	t.Run("Q3", func(t *testing.T) {
		out := Q3.Apply(base, hs)
		test.That(t, out.StartHeading, test.ShouldEqual, 180.)
		test.That(t, out.EndHeading, test.ShouldEqual, -135.)
		test.That(t, out.LeftTurn, test.ShouldBeTrue)
		test.That(t, out.Poses[0].Yaw, test.ShouldAlmostEqual, math.Pi)
		test.That(t, out.Poses[1].X, test.ShouldEqual, -1.)
		test.That(t, out.Poses[1].Y, test.ShouldEqual, -0.5)
		test.That(t, out.Poses[1].Yaw, test.ShouldAlmostEqual, -3*math.Pi/4)
	})

	t.Run("Q4", func(t *testing.T) {
		out := Q4.Apply(base, hs)
		test.That(t, out.StartHeading, test.ShouldEqual, 0.)
		test.That(t, math.Signbit(out.StartHeading), test.ShouldBeFalse)
		test.That(t, out.EndHeading, test.ShouldEqual, -45.)
		test.That(t, out.LeftTurn, test.ShouldBeFalse)
		test.That(t, out.Poses[0].Yaw, test.ShouldEqual, 0.)
		test.That(t, out.Poses[1].X, test.ShouldEqual, 1.)
		test.That(t, out.Poses[1].Y, test.ShouldEqual, -0.5)
		test.That(t, out.Poses[1].Yaw, test.ShouldAlmostEqual, -math.Pi/4)
	})

	t.Run("input untouched", func(t *testing.T) {
		Q3.Apply(base, hs)
		test.That(t, base.Poses[1], test.ShouldResemble, Pose{X: 1, Y: 0.5, Yaw: math.Pi / 4})
	})
}

func TestYawsWrapped(t *testing.T) {
	hs, err := DiscretizeHeadings(8)
	test.That(t, err, test.ShouldBeNil)
	base := Trajectory{Poses: []Pose{{Yaw: 0}, {Yaw: math.Pi / 2}, {Yaw: -math.Pi / 2}}}
	for _, q := range []Quadrant{Q1, Q2, Q3, Q4} {
		for _, p := range q.Apply(base, hs).Poses {
			test.That(t, p.Yaw, test.ShouldBeGreaterThan, -math.Pi)
			test.That(t, p.Yaw, test.ShouldBeLessThanOrEqualTo, math.Pi)
		}
	}
}
