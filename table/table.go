// Package table serializes a motion primitive set into the JSON lattice file read by state
// lattice planners.
package table

import (
	"encoding/json"
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/lattice/config"
	"go.viam.com/lattice/lattice"
	"go.viam.com/lattice/utils"
)

// Version of the file layout.
const Version = 1.0

const dateFormat = "2006-01-02"

// Document is the top level of a lattice file.
type Document struct {
	Version       float64     `json:"version"`
	DateGenerated string      `json:"date_generated"`
	Metadata      Metadata    `json:"lattice_metadata"`
	Primitives    []Primitive `json:"primitives"`
}

// Metadata describes the lattice the primitives were generated for. Angles are in radians.
type Metadata struct {
	MotionModel          string    `json:"motion_model"`
	TurningRadius        float64   `json:"turning_radius"`
	GridResolution       float64   `json:"grid_resolution"`
	NumberOfHeadings     int       `json:"num_of_headings"`
	HeadingAngles        []float64 `json:"heading_angles"`
	NumberOfTrajectories int       `json:"number_of_trajectories"`
}

// Primitive is one trajectory. Angle indices refer to Metadata.HeadingAngles and poses are
// [x, y, yaw] triples.
type Primitive struct {
	TrajectoryID     int          `json:"trajectory_id"`
	StartAngleIndex  int          `json:"start_angle_index"`
	EndAngleIndex    int          `json:"end_angle_index"`
	LeftTurn         bool         `json:"left_turn"`
	TrajectoryRadius float64      `json:"trajectory_radius"`
	TrajectoryLength float64      `json:"trajectory_length"`
	ArcLength        float64      `json:"arc_length"`
	StraightLength   float64      `json:"straight_length"`
	Poses            [][3]float64 `json:"poses"`
}

// Options control how a Document is built.
type Options struct {
	// Clock supplies the generation date. Defaults to the wall clock.
	Clock clock.Clock
}

// NewDocument lays out primitives as a lattice file. Trajectory ids follow start heading order.
func NewDocument(cfg *config.Config, headings lattice.HeadingSet, primitives *lattice.PrimitiveSet, opts Options) (*Document, error) {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}

	all := primitives.All()
	doc := &Document{
		Version:       Version,
		DateGenerated: opts.Clock.Now().Format(dateFormat),
		Metadata: Metadata{
			MotionModel:      string(cfg.Model()),
			TurningRadius:    cfg.TurningRadius,
			GridResolution:   cfg.GridSeparation,
			NumberOfHeadings: headings.Len(),
			HeadingAngles: lo.Map(headings.Sorted(), func(h float64, _ int) float64 {
				return utils.DegToRad(h)
			}),
			NumberOfTrajectories: len(all),
		},
		Primitives: make([]Primitive, 0, len(all)),
	}

	for id, traj := range all {
		start, ok := headings.Index(traj.StartHeading)
		if !ok {
			return nil, errors.Errorf("trajectory %d starts at %v° which is not a lattice heading", id, traj.StartHeading)
		}
		end, ok := headings.Index(traj.EndHeading)
		if !ok {
			return nil, errors.Errorf("trajectory %d ends at %v° which is not a lattice heading", id, traj.EndHeading)
		}
		doc.Primitives = append(doc.Primitives, Primitive{
			TrajectoryID:     id,
			StartAngleIndex:  start,
			EndAngleIndex:    end,
			LeftTurn:         traj.LeftTurn,
			TrajectoryRadius: traj.Radius,
			TrajectoryLength: traj.TotalLength,
			ArcLength:        traj.ArcLength,
			StraightLength:   traj.StraightLength,
			Poses: lo.Map(traj.Poses, func(p lattice.Pose, _ int) [3]float64 {
				return [3]float64{p.X, p.Y, p.Yaw}
			}),
		})
	}
	return doc, nil
}

// Write encodes doc to w as indented JSON.
func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(doc), "failed to encode lattice file")
}

// WriteFile writes doc to path, replacing any existing file.
func WriteFile(path string, doc *Document) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", path)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))
	return Write(f, doc)
}

// Read decodes a lattice file.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode lattice file")
	}
	return &doc, nil
}
