// Package db defines the validator database maintenance commands.
package db

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-slashing-protection/cmd"
	"github.com/prysmaticlabs/prysm-slashing-protection/cmd/validator/flags"
	"github.com/prysmaticlabs/prysm-slashing-protection/io/file"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/kv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var log = logrus.WithField("prefix", "db")

var backupFlags = cmd.WrapFlags([]cli.Flag{
	cmd.DataDirFlag,
	flags.BackupDirFlag,
})

// Commands for interacting with the validator database.
var Commands = &cli.Command{
	Name:     "db",
	Category: "db",
	Usage:    "defines commands for interacting with the validator database",
	Subcommands: []*cli.Command{
		{
			Name:        "backup",
			Description: `copies the validator database into a timestamped backup file`,
			Flags:       backupFlags,
			Before: func(cliCtx *cli.Context) error {
				return cmd.LoadFlagsFromConfig(cliCtx, backupFlags)
			},
			Action: func(cliCtx *cli.Context) error {
				if _, err := backupDatabase(cliCtx); err != nil {
					log.WithError(err).Error("Could not back up validator database")
					return err
				}
				return nil
			},
		},
	},
}

// backupDatabase writes a copy of the database and returns its path. Without
// --backup-dir the copy goes to the backups directory next to the database.
func backupDatabase(cliCtx *cli.Context) (string, error) {
	dataDir, err := file.ExpandPath(cliCtx.String(cmd.DataDirFlag.Name))
	if err != nil {
		return "", errors.Wrapf(err, "could not expand data directory %s", cliCtx.String(cmd.DataDirFlag.Name))
	}
	if !file.FileExists(filepath.Join(dataDir, kv.ProtectionDbFileName)) {
		return "", errors.Errorf("no %s found in %s", kv.ProtectionDbFileName, dataDir)
	}
	backupDir := cliCtx.String(flags.BackupDirFlag.Name)

	validatorDB, err := kv.NewKVStore(cliCtx.Context, dataDir, &kv.Config{})
	if err != nil {
		return "", errors.Wrapf(err, "could not access validator database at path %s", dataDir)
	}
	defer func() {
		if err := validatorDB.Close(); err != nil {
			log.WithError(err).Error("Could not close validator DB")
		}
	}()
	return validatorDB.Backup(cliCtx.Context, backupDir, false)
}
