package lattice

import (
	"context"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
	"golang.org/x/sync/errgroup"

	"go.viam.com/lattice/config"
	"go.viam.com/lattice/curve"
	"go.viam.com/lattice/logging"
	"go.viam.com/lattice/utils"
)

// Options tune how the primitive set is computed without changing the result.
type Options struct {
	// Workers bounds how many start headings are searched concurrently. Values below 1 search
	// serially.
	Workers int
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

// Builder finds the minimal spanning set of endpoints for every canonical start heading.
type Builder struct {
	cfg      *config.Config
	headings HeadingSet
	curves   curve.Generator
	filter   *MinimalityFilter
	logger   logging.Logger
	opts     Options
}

// NewBuilder returns a Builder for cfg that fits candidate paths with curves.
func NewBuilder(cfg *config.Config, curves curve.Generator, logger logging.Logger, opts Options) (*Builder, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if curves == nil {
		return nil, errors.New("curve generator is required")
	}
	if err := cfg.Validate(""); err != nil {
		return nil, err
	}
	headings, err := DiscretizeHeadings(cfg.NumberOfHeadings)
	if err != nil {
		return nil, err
	}
	return &Builder{
		cfg:      cfg,
		headings: headings,
		curves:   curves,
		filter:   NewMinimalityFilter(cfg.GridSeparation, cfg.NumberOfHeadings),
		logger:   logger,
		opts:     opts,
	}, nil
}

// Headings returns the discretized headings the builder works over.
func (b *Builder) Headings() HeadingSet {
	return b.headings
}

// Build searches every canonical start heading and returns the accepted endpoints. The result does
// not depend on Options.Workers.
func (b *Builder) Build(ctx context.Context) (*SpanningSet, error) {
	starts := b.headings.Canonical()
	results := make([][]Endpoint, len(starts))
	errs := make([]error, len(starts))

	var group errgroup.Group
	group.SetLimit(b.opts.workers())
	for i, start := range starts {
		i, start := i, start
		group.Go(func() error {
			results[i], errs[i] = b.buildHeading(ctx, start)
			return nil
		})
	}
	goutils.UncheckedError(group.Wait())

	if err := multierr.Combine(errs...); err != nil {
		return nil, err
	}
	return newSpanningSet(starts, results), nil
}

func (b *Builder) buildHeading(ctx context.Context, start float64) ([]Endpoint, error) {
	targets := b.headings.TargetHeadings(start)
	step := b.cfg.Step()
	accepted := []Endpoint{}

	for level := b.cfg.StartLevel(); level <= b.cfg.MaxLevel(); level++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, point := range LevelPoints(level, b.cfg.GridSeparation) {
			for _, target := range targets {
				res, err := b.curves.Generate(point, start, target, step)
				if errors.Is(err, curve.ErrInfeasible) || (err == nil && !res.Feasible()) {
					b.logger.Debugw("skipping infeasible candidate",
						"start", start, "x", point.X, "y", point.Y, "heading", target)
					continue
				}
				if err != nil {
					return nil, errors.Wrapf(err, "fitting curve from %v° to (%v, %v, %v°)", start, point.X, point.Y, target)
				}
				if !finitePath(res) {
					return nil, errors.Wrapf(ErrNonFiniteGeometry, "from %v° to (%v, %v, %v°)", start, point.X, point.Y, target)
				}
				if b.filter.IsMinimal(res.Points, accepted) {
					accepted = append(accepted, Endpoint{X: point.X, Y: point.Y, Heading: target})
				}
			}
		}
	}

	b.logger.Infow("spanning set built", "start", start, "endpoints", len(accepted))
	return accepted, nil
}

func finitePath(res *curve.Result) bool {
	if !utils.IsFinite(res.Radius, res.StartToArcDistance, res.ArcToEndDistance) {
		return false
	}
	return finitePoints(res.Points)
}

func finitePoints(points []r2.Point) bool {
	for _, p := range points {
		if !utils.IsFinite(p.X, p.Y) {
			return false
		}
	}
	return true
}
