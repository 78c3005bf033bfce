// Package main defines the validator slashing protection tool. It imports, exports
// and backs up the slashing protection history kept by a validator client.
package main

import (
	"os"

	"github.com/prysmaticlabs/prysm-slashing-protection/cmd"
	"github.com/prysmaticlabs/prysm-slashing-protection/cmd/validator/db"
	historycmd "github.com/prysmaticlabs/prysm-slashing-protection/cmd/validator/slashing-protection"
	"github.com/prysmaticlabs/prysm-slashing-protection/runtime/version"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	_ "go.uber.org/automaxprocs"
)

var log = logrus.WithField("prefix", "main")

var appFlags = cmd.WrapFlags([]cli.Flag{
	cmd.VerbosityFlag,
	cmd.LogFormat,
	cmd.LogFileName,
	cmd.ConfigFileFlag,
})

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "validator"
	app.Usage = "manages the slashing protection history of an Ethereum validator client"
	app.Version = version.Version()
	app.Flags = appFlags
	app.Commands = []*cli.Command{
		historycmd.Commands,
		db.Commands,
	}
	app.Before = func(cliCtx *cli.Context) error {
		if err := cmd.LoadFlagsFromConfig(cliCtx, appFlags); err != nil {
			return err
		}
		return cmd.ConfigureLogging(cliCtx)
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
