package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/lattice/config"
	"go.viam.com/lattice/lattice"
	"go.viam.com/lattice/table"
	"go.viam.com/lattice/utils"
	"go.viam.com/lattice/visualize"
)

// GenerateAction computes the primitives for a configuration file and writes the lattice file.
func GenerateAction(c *cli.Context) error {
	logger := loggerFrom(c)

	attrs, err := config.ReadAttributes(c.String(flagConfig))
	if err != nil {
		return err
	}
	if err := config.ApplyOverrides(attrs, c.StringSlice(flagSet)); err != nil {
		return err
	}
	cfg, err := config.FromAttributes(attrs)
	if err != nil {
		return err
	}

	output := c.String(flagOutput)
	if output == "" {
		output = cfg.OutputFile
	}
	if output == "" {
		output = defaultOut
	}

	gen, err := lattice.NewGenerator(cfg, nil, logger, lattice.Options{Workers: utils.Workers(c.Int(flagWorkers))})
	if err != nil {
		return err
	}
	logger.Infow("generating primitives",
		"headings", cfg.NumberOfHeadings, "start_level", cfg.StartLevel(), "max_level", cfg.MaxLevel())

	primitives, err := gen.Run(c.Context)
	if err != nil {
		return err
	}

	doc, err := table.NewDocument(cfg, gen.Headings(), primitives, table.Options{})
	if err != nil {
		return err
	}
	if err := table.WriteFile(output, doc); err != nil {
		return err
	}
	printf(c.App.Writer, "wrote %d primitives to %s", primitives.Len(), output)

	if dir := c.String(flagPlotDir); dir != "" {
		n, err := visualize.SavePlots(primitives, dir)
		if err != nil {
			return errors.Wrap(err, "failed to save plots")
		}
		printf(c.App.Writer, "wrote %d plots to %s", n, dir)
	}
	return nil
}

// HeadingsAction prints the discretized headings for a heading count.
func HeadingsAction(c *cli.Context) error {
	headings, err := lattice.DiscretizeHeadings(c.Int(flagCount))
	if err != nil {
		return err
	}
	for i, h := range headings.Sorted() {
		printf(c.App.Writer, "%3d\t%9.4f", i, h)
	}
	return nil
}

// SchemaAction prints the JSON schema of the configuration file.
func SchemaAction(c *cli.Context) error {
	out, err := json.MarshalIndent(config.Schema(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode schema")
	}
	printf(c.App.Writer, "%s", out)
	return nil
}

// printf prints a message with no decoration.
func printf(w io.Writer, format string, a ...interface{}) {
	// no errors
	//nolint:errcheck
	_, _ = fmt.Fprintf(w, format+"\n", a...)
}
