// Package flags contains all configuration runtime flags for the validator slashing protection tooling.
package flags

import (
	cmdflags "github.com/prysmaticlabs/prysm-slashing-protection/cmd/flags"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/slashing-protection-history/format"
	"github.com/urfave/cli/v2"
)

var interchangeFormat string

var (
	// SlashingProtectionJSONFileFlag is used to enter the file path of the slashing protection JSON.
	SlashingProtectionJSONFileFlag = &cli.StringFlag{
		Name:  "slashing-protection-json-file",
		Usage: "Path to an EIP-3076 compliant JSON file containing your slashing protection history to import",
	}
	// SlashingProtectionExportDirFlag allows specifying the output directory
	// for a validator's slashing protection history.
	SlashingProtectionExportDirFlag = &cli.StringFlag{
		Name:  "slashing-protection-export-dir",
		Usage: "Directory to which the slashing_protection.json file is written",
	}
	// InterchangeFormatFlag selects the EIP-3076 flavor written on export.
	InterchangeFormatFlag = cmdflags.EnumValue{
		Name:        "interchange-format",
		Usage:       "Slashing protection interchange format to export",
		Destination: &interchangeFormat,
		Enum:        []string{string(format.Complete), string(format.Minimal)},
		Value:       string(format.Complete),
	}.GenericFlag()
	// BackupDirFlag defines the directory where database backups are written.
	BackupDirFlag = &cli.StringFlag{
		Name:  "backup-dir",
		Usage: "Directory to store validator database backups in, defaults to the data directory",
	}
	// SkipBackupFlag disables the database backup taken before an import.
	SkipBackupFlag = &cli.BoolFlag{
		Name:  "skip-backup",
		Usage: "Do not back up the validator database before importing slashing protection history",
	}
)

// InterchangeFormat returns the parsed value of --interchange-format.
func InterchangeFormat(cliCtx *cli.Context) (format.Kind, error) {
	return format.ParseKind(cmdflags.Selected(cliCtx, InterchangeFormatFlag.Name))
}
