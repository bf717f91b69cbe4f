// Package visualize renders motion primitives to PNG images.
package visualize

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"go.viam.com/lattice/lattice"
)

const imageSize = 6 * vg.Inch

// FileName returns the image name used for the start heading at position index.
func FileName(index int) string {
	return fmt.Sprintf("heading_%02d.png", index)
}

// SavePlots writes one image per start heading of primitives into dir, creating it if needed. It
// returns how many images were written. A heading that fails to render does not stop the others.
func SavePlots(primitives *lattice.PrimitiveSet, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return 0, errors.Wrapf(err, "failed to create plot dir %q", dir)
	}

	var (
		count int
		errs  error
	)
	for i, heading := range primitives.Headings() {
		p, err := Plot(heading, primitives.Trajectories(heading))
		if err == nil {
			err = p.Save(imageSize, imageSize, filepath.Join(dir, FileName(i)))
		}
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "heading %v°", heading))
			continue
		}
		count++
	}
	return count, errs
}

// Plot draws the trajectories leaving a single start heading.
func Plot(heading float64, trajectories []lattice.Trajectory) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Start heading %.2f°", heading)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	var extent float64
	for i, traj := range trajectories {
		if len(traj.Poses) < 2 {
			return nil, errors.Errorf("trajectory %d has %d poses, need at least 2", i, len(traj.Poses))
		}
		pts := make(plotter.XYs, 0, len(traj.Poses))
		for _, pose := range traj.Poses {
			pts = append(pts, plotter.XY{X: pose.X, Y: pose.Y})
			extent = math.Max(extent, math.Max(math.Abs(pose.X), math.Abs(pose.Y)))
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
	}

	// Square axes keep arcs round.
	if extent > 0 {
		p.X.Min, p.X.Max = -extent, extent
		p.Y.Min, p.Y.Max = -extent, extent
	}
	return p, nil
}
