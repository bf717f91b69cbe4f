package lattice

import (
	"context"

	"github.com/pkg/errors"

	"go.viam.com/lattice/config"
	"go.viam.com/lattice/curve"
	"go.viam.com/lattice/logging"
)

// Generator computes the motion primitive table for a configuration.
type Generator struct {
	builder  *Builder
	expander *Expander
	logger   logging.Logger
}

// NewGenerator returns a Generator for cfg. A nil curves selects an arc generator bounded by the
// configured turning radius.
func NewGenerator(cfg *config.Config, curves curve.Generator, logger logging.Logger, opts Options) (*Generator, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = logging.Global()
	}
	if curves == nil {
		arcs, err := curve.NewArcGenerator(cfg.TurningRadius, cfg.Step())
		if err != nil {
			return nil, err
		}
		curves = arcs
	}

	builder, err := NewBuilder(cfg, curves, logger.Sublogger("builder"), opts)
	if err != nil {
		return nil, err
	}
	return &Generator{
		builder:  builder,
		expander: NewExpander(cfg, builder.Headings(), curves, logger.Sublogger("expander")),
		logger:   logger,
	}, nil
}

// Headings returns the discretized headings of the lattice.
func (g *Generator) Headings() HeadingSet {
	return g.builder.Headings()
}

// SpanningSet returns the accepted endpoints for every canonical start heading.
func (g *Generator) SpanningSet(ctx context.Context) (*SpanningSet, error) {
	return g.builder.Build(ctx)
}

// Run computes the full primitive table.
func (g *Generator) Run(ctx context.Context) (*PrimitiveSet, error) {
	set, err := g.SpanningSet(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "building spanning set")
	}
	g.logger.Debugw("spanning set complete", "endpoints", set.Len())

	primitives, err := g.expander.Expand(ctx, set)
	if err != nil {
		return nil, errors.Wrap(err, "expanding primitives")
	}
	return primitives, nil
}
