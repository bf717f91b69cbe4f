package table

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/test"

	"go.viam.com/lattice/config"
	"go.viam.com/lattice/lattice"
	"go.viam.com/lattice/logging"
)

func generate(t *testing.T) (*config.Config, *lattice.Generator, *lattice.PrimitiveSet) {
	t.Helper()
	cfg := &config.Config{
		GridSeparation:   0.1,
		TurningRadius:    0.5,
		MaxLength:        1.0,
		NumberOfHeadings: 16,
	}
	g, err := lattice.NewGenerator(cfg, nil, logging.NewTestLogger(t), lattice.Options{Workers: 4})
	test.That(t, err, test.ShouldBeNil)
	ps, err := g.Run(context.Background())
	test.That(t, err, test.ShouldBeNil)
	return cfg, g, ps
}

func mockClock() *clock.Mock {
	clk := clock.NewMock()
	clk.Set(time.Date(2024, time.March, 17, 12, 0, 0, 0, time.UTC))
	return clk
}

func TestNewDocument(t *testing.T) {
	cfg, g, ps := generate(t)

	doc, err := NewDocument(cfg, g.Headings(), ps, Options{Clock: mockClock()})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, doc.Version, test.ShouldEqual, 1.0)
	test.That(t, doc.DateGenerated, test.ShouldEqual, "2024-03-17")

	meta := doc.Metadata
	test.That(t, meta.MotionModel, test.ShouldEqual, "ackermann")
	test.That(t, meta.TurningRadius, test.ShouldEqual, 0.5)
	test.That(t, meta.GridResolution, test.ShouldEqual, 0.1)
	test.That(t, meta.NumberOfHeadings, test.ShouldEqual, 16)
	test.That(t, len(meta.HeadingAngles), test.ShouldEqual, 16)
	test.That(t, meta.HeadingAngles[len(meta.HeadingAngles)-1], test.ShouldAlmostEqual, math.Pi)
	test.That(t, meta.NumberOfTrajectories, test.ShouldEqual, ps.Len())
	test.That(t, len(doc.Primitives), test.ShouldEqual, ps.Len())

	all := ps.All()
	for i, prim := range doc.Primitives {
		test.That(t, prim.TrajectoryID, test.ShouldEqual, i)
		test.That(t, meta.HeadingAngles[prim.StartAngleIndex]*180/math.Pi, test.ShouldAlmostEqual, all[i].StartHeading)
		test.That(t, meta.HeadingAngles[prim.EndAngleIndex]*180/math.Pi, test.ShouldAlmostEqual, all[i].EndHeading)
		test.That(t, prim.LeftTurn, test.ShouldEqual, all[i].LeftTurn)
		test.That(t, prim.TrajectoryLength, test.ShouldEqual, all[i].TotalLength)
		test.That(t, len(prim.Poses), test.ShouldEqual, len(all[i].Poses))
		last := all[i].Poses[len(all[i].Poses)-1]
		test.That(t, prim.Poses[len(prim.Poses)-1], test.ShouldResemble, [3]float64{last.X, last.Y, last.Yaw})
	}

	cfg.MotionModel = config.MotionModelOmni
	doc, err = NewDocument(cfg, g.Headings(), ps, Options{Clock: mockClock()})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, doc.Metadata.MotionModel, test.ShouldEqual, "omni")
}

func TestNewDocumentWrongHeadings(t *testing.T) {
	cfg, _, ps := generate(t)
	other, err := lattice.DiscretizeHeadings(8)
	test.That(t, err, test.ShouldBeNil)

	_, err = NewDocument(cfg, other, ps, Options{})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "not a lattice heading")
}

func TestWriteRead(t *testing.T) {
	cfg, g, ps := generate(t)
	doc, err := NewDocument(cfg, g.Headings(), ps, Options{Clock: mockClock()})
	test.That(t, err, test.ShouldBeNil)

	var buf bytes.Buffer
	test.That(t, Write(&buf, doc), test.ShouldBeNil)
	test.That(t, buf.String(), test.ShouldContainSubstring, `"date_generated": "2024-03-17"`)
	test.That(t, buf.String(), test.ShouldContainSubstring, `"lattice_metadata"`)
	test.That(t, buf.String(), test.ShouldNotContainSubstring, "-0,")

	decoded, err := Read(&buf)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, decoded, test.ShouldResemble, doc)

	path := filepath.Join(t.TempDir(), "lattice.json")
	test.That(t, WriteFile(path, doc), test.ShouldBeNil)
	f, err := os.Open(path)
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	fromFile, err := Read(f)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, fromFile.Metadata, test.ShouldResemble, doc.Metadata)

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "lattice.json"), doc)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = Read(bytes.NewBufferString("{"))
	test.That(t, err, test.ShouldNotBeNil)
}
