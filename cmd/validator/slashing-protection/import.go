package historycmd

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-slashing-protection/cmd"
	"github.com/prysmaticlabs/prysm-slashing-protection/cmd/validator/flags"
	"github.com/prysmaticlabs/prysm-slashing-protection/io/file"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/kv"
	slashingprotection "github.com/prysmaticlabs/prysm-slashing-protection/validator/slashing-protection-history"
	"github.com/urfave/cli/v2"
)

// Reads an EIP-3076 JSON file and merges its history into the validator database.
// The database is backed up first unless --skip-backup is set. A failed import
// leaves the database untouched.
func importSlashingProtectionJSON(cliCtx *cli.Context) error {
	dataDir, err := file.ExpandPath(cliCtx.String(cmd.DataDirFlag.Name))
	if err != nil {
		return errors.Wrapf(err, "could not expand data directory %s", cliCtx.String(cmd.DataDirFlag.Name))
	}
	found, dbDir, err := findDatabase(dataDir)
	if err != nil {
		return err
	}
	if !found {
		log.Infof("No %s found under %s, a new database will be created", kv.ProtectionDbFileName, dataDir)
		dbDir = dataDir
	}

	protectionFilePath := cliCtx.String(flags.SlashingProtectionJSONFileFlag.Name)
	if protectionFilePath == "" {
		return errors.Errorf("slashing protection file not specified, use --%s", flags.SlashingProtectionJSONFileFlag.Name)
	}
	protectionFilePath, err = file.ExpandPath(protectionFilePath)
	if err != nil {
		return errors.Wrapf(err, "could not expand file path %s", protectionFilePath)
	}
	if !file.FileExists(protectionFilePath) {
		return errors.Errorf("file %s does not exist", protectionFilePath)
	}

	validatorDB, err := kv.NewKVStore(cliCtx.Context, dbDir, &kv.Config{})
	if err != nil {
		return errors.Wrapf(err, "could not access validator database at path %s", dbDir)
	}
	defer func() {
		if err := validatorDB.Close(); err != nil {
			log.WithError(err).Error("Could not close validator DB")
		}
	}()

	if found && !cliCtx.Bool(flags.SkipBackupFlag.Name) {
		backupPath, err := validatorDB.Backup(cliCtx.Context, cliCtx.String(flags.BackupDirFlag.Name), false)
		if err != nil {
			return errors.Wrap(err, "could not back up validator database before import")
		}
		log.WithField("backupPath", backupPath).Info("Backed up validator database before import")
	}

	enc, err := file.ReadFileAsBytes(protectionFilePath)
	if err != nil {
		return errors.Wrapf(err, "could not read file %s", protectionFilePath)
	}

	log.Info("Starting import of slashing protection file")
	if err := slashingprotection.ImportStandardProtectionJSON(cliCtx.Context, validatorDB, bytes.NewReader(enc)); err != nil {
		return errors.Wrapf(err, "could not import slashing protection JSON file %s", protectionFilePath)
	}
	log.Infof("Slashing protection JSON successfully imported into %s", validatorDB.DatabasePath())
	return nil
}
