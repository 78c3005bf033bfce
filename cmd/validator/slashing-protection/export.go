package historycmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-slashing-protection/cmd"
	"github.com/prysmaticlabs/prysm-slashing-protection/cmd/validator/flags"
	"github.com/prysmaticlabs/prysm-slashing-protection/io/file"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/kv"
	slashingprotection "github.com/prysmaticlabs/prysm-slashing-protection/validator/slashing-protection-history"
	"github.com/urfave/cli/v2"
)

const jsonExportFileName = "slashing_protection.json"

// Extracts a validator's slashing protection history from their database and writes it
// as an EIP-3076 JSON file, so it can be moved to another machine or client.
func exportSlashingProtectionJSON(cliCtx *cli.Context) error {
	kind, err := flags.InterchangeFormat(cliCtx)
	if err != nil {
		return err
	}
	dataDir, err := file.ExpandPath(cliCtx.String(cmd.DataDirFlag.Name))
	if err != nil {
		return errors.Wrapf(err, "could not expand data directory %s", cliCtx.String(cmd.DataDirFlag.Name))
	}
	found, dbDir, err := findDatabase(dataDir)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf(
			"%s file (validator database) was not found at path %s, so nothing to export",
			kv.ProtectionDbFileName,
			dataDir,
		)
	}
	outputDir := cliCtx.String(flags.SlashingProtectionExportDirFlag.Name)
	if outputDir == "" {
		return errors.Errorf("output directory not specified, use --%s", flags.SlashingProtectionExportDirFlag.Name)
	}
	outputDir, err = file.ExpandPath(outputDir)
	if err != nil {
		return errors.Wrapf(err, "could not expand output directory %s", outputDir)
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

	keys, err := validatorDB.RegisteredPublicKeys(cliCtx.Context)
	if err != nil {
		return errors.Wrap(err, "could not list registered public keys")
	}
	if len(keys) == 0 {
		log.Warnf(
			"No slashing protection data was found in the %s directory. Either your validator "+
				"has not signed anything yet, or its database lives in another --%s",
			dbDir,
			cmd.DataDirFlag.Name,
		)
	}

	var buf bytes.Buffer
	if err := slashingprotection.ExportStandardProtectionJSON(cliCtx.Context, validatorDB, kind, &buf); err != nil {
		return errors.Wrap(err, "could not export slashing protection history")
	}
	if err := file.MkdirAll(outputDir); err != nil {
		return errors.Wrapf(err, "could not create output directory %s", outputDir)
	}
	outputFilePath := filepath.Join(outputDir, jsonExportFileName)
	log.WithField("format", kind).Infof("Writing slashing protection export JSON file to %s", outputFilePath)
	if err := file.WriteFile(outputFilePath, buf.Bytes()); err != nil {
		return errors.Wrapf(err, "could not write file to path %s", outputFilePath)
	}
	log.Infof(
		"Successfully wrote %s. You can import this file with the "+
			"slashing-protection-history import command on another machine",
		outputFilePath,
	)
	return nil
}

// findDatabase looks for validator.db under dir and returns the directory holding it.
func findDatabase(dir string) (bool, string, error) {
	exists, err := file.HasDir(dir)
	if err != nil {
		return false, "", errors.Wrapf(err, "could not check directory %s", dir)
	}
	if !exists {
		return false, "", nil
	}
	found, path, err := file.RecursiveFileFind(kv.ProtectionDbFileName, dir)
	if err != nil {
		return false, "", errors.Wrapf(err, "error finding validator database at path %s", dir)
	}
	if !found {
		return false, "", nil
	}
	return true, filepath.Dir(path), nil
}
