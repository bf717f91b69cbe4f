// Package cli contains the latticegen command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/lattice/logging"
)

const (
	// Flags.
	flagDebug    = "debug"
	flagConfig   = "config"
	flagOutput   = "output"
	flagPlotDir  = "plot-dir"
	flagSet      = "set"
	flagWorkers  = "workers"
	flagCount    = "count"
	flagInput    = "input"
	flagLogFile  = "log-file"
	loggerKey    = "logger"
	logFileKey   = "logFile"
	loggerName   = "latticegen"
	defaultOut   = "output.json"
	defaultCount = 16
)

// NewApp returns the latticegen application writing results to out and logs and errors to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "latticegen",
		Usage:           "generate motion primitives for state lattice planners",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Metadata:        map[string]interface{}{},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "also write logs to `FILE`",
			},
		},
		Before: func(c *cli.Context) error {
			logger := logging.NewBlankLogger(loggerName)
			logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
			if c.Bool(flagDebug) {
				logger.SetLevel(logging.DEBUG)
			} else {
				logger.SetLevel(logging.INFO)
			}
			if path := c.String(flagLogFile); path != "" {
				file := logging.NewFileAppender(path)
				logger.AddAppender(file)
				c.App.Metadata[logFileKey] = file
			}
			c.App.Metadata[loggerKey] = logger
			return nil
		},
		After: func(c *cli.Context) error {
			if file, ok := c.App.Metadata[logFileKey].(*logging.FileAppender); ok {
				return file.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "generate a lattice file from a configuration",
				UsageText: "latticegen generate --config FILE [--output FILE] [--plot-dir DIR] [--set key=value]...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagConfig,
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "load configuration from `FILE`",
					},
					&cli.StringFlag{
						Name:    flagOutput,
						Aliases: []string{"o"},
						Usage:   "write the lattice file to `FILE`, overriding outputFile in the configuration",
					},
					&cli.StringFlag{
						Name:  flagPlotDir,
						Usage: "also render one image per start heading into `DIR`",
					},
					&cli.StringSliceFlag{
						Name:  flagSet,
						Usage: "override a configuration value, as `key=value`",
					},
					&cli.IntFlag{
						Name:  flagWorkers,
						Usage: "number of start headings to search concurrently, 0 picks a default from the available cores",
					},
				},
				Action: GenerateAction,
			},
			{
				Name:   "headings",
				Usage:  "print the headings of a lattice in degrees",
				Action: HeadingsAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  flagCount,
						Value: defaultCount,
						Usage: "number of headings, a multiple of 8",
					},
				},
			},
			{
				Name:   "summary",
				Usage:  "print per heading statistics of a lattice file",
				Action: SummaryAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagInput,
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "read the lattice file from `FILE`",
					},
				},
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of the configuration file",
				Action: SchemaAction,
			},
		},
	}
}

// loggerFrom returns the logger set up before the command ran.
func loggerFrom(c *cli.Context) logging.Logger {
	if logger, ok := c.App.Metadata[loggerKey].(logging.Logger); ok {
		return logger
	}
	return logging.Global()
}
