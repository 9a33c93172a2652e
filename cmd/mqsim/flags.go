package main

import "github.com/urfave/cli/v3"

var (
	circuitPath string
	paramArgs   []string
	logLevel    string
	logFormat   string
	debug       bool
)

func circuitFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "circuit",
			Aliases:     []string{"c"},
			Usage:       "path to circuit JSON ('-' for stdin)",
			Required:    true,
			Destination: &circuitPath,
		},
		&cli.StringSliceFlag{
			Name:        "param",
			Aliases:     []string{"p"},
			Usage:       "bind a parameter, name=value (repeatable)",
			Destination: &paramArgs,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}
