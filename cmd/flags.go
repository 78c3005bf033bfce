// Package cmd defines the command line flags shared by the validator tooling.
package cmd

import (
	"github.com/prysmaticlabs/prysm-slashing-protection/cmd/flags"
	"github.com/urfave/cli/v2"
)

var logFormat string

var (
	// VerbosityFlag defines the logrus configuration.
	VerbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity (trace, debug, info=default, warn, error, fatal, panic)",
		Value: "info",
	}
	// DataDirFlag defines a path on disk.
	DataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "Data directory for the validator slashing protection database",
		Value: DefaultDataDir(),
	}
	// LogFormat specifies the log output format.
	LogFormat = flags.EnumValue{
		Name:        "log-format",
		Usage:       "Specify log formatting",
		Destination: &logFormat,
		Enum:        []string{"text", "json", "fluentd"},
		Value:       "text",
	}.GenericFlag()
	// LogFileName specifies the log output file name.
	LogFileName = &cli.StringFlag{
		Name:  "log-file",
		Usage: "Specify log file name, relative or absolute",
	}
	// ConfigFileFlag specifies the filepath to load flag values.
	ConfigFileFlag = &cli.StringFlag{
		Name:  "config-file",
		Usage: "The filepath to a yaml file with flag values",
	}
)
