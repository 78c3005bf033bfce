package cmd

import (
	joonix "github.com/joonix/log"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-slashing-protection/cmd/flags"
	"github.com/prysmaticlabs/prysm-slashing-protection/io/logs"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var log = logrus.WithField("prefix", "cmd")

// LoadFlagsFromConfig sets flags values from the YAML file given with --config-file.
// Flags set on the command line take precedence.
func LoadFlagsFromConfig(cliCtx *cli.Context, cmdFlags []cli.Flag) error {
	if cliCtx.IsSet(ConfigFileFlag.Name) {
		if err := altsrc.InitInputSourceWithContext(
			cmdFlags,
			altsrc.NewYamlSourceFromFlagFunc(ConfigFileFlag.Name),
		)(cliCtx); err != nil {
			return errors.Wrapf(err, "could not load flags from config file %s", cliCtx.String(ConfigFileFlag.Name))
		}
	}
	return nil
}

// ConfigureLogging applies --verbosity, --log-format and --log-file to the global logger.
func ConfigureLogging(cliCtx *cli.Context) error {
	level, err := logrus.ParseLevel(cliCtx.String(VerbosityFlag.Name))
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	logFileName := cliCtx.String(LogFileName.Name)
	format := flags.Selected(cliCtx, LogFormat.Name)
	switch format {
	case "text":
		formatter := new(prefixed.TextFormatter)
		formatter.TimestampFormat = "2006-01-02 15:04:05"
		formatter.FullTimestamp = true
		// Colors are ANSI codes and unreadable in log files.
		formatter.DisableColors = logFileName != ""
		logrus.SetFormatter(formatter)
	case "fluentd":
		logrus.SetFormatter(joonix.NewFormatter())
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.Errorf("unknown log format %s", format)
	}

	if logFileName != "" {
		if err := logs.ConfigurePersistentLogging(logFileName); err != nil {
			log.WithError(err).Error("Failed to configuring logging to disk.")
		}
	}
	return nil
}
