// Package historycmd implements the slashing-protection-history subcommands.
package historycmd

import (
	"github.com/prysmaticlabs/prysm-slashing-protection/cmd"
	"github.com/prysmaticlabs/prysm-slashing-protection/cmd/validator/flags"
	"github.com/urfave/cli/v2"
)

var exportFlags = cmd.WrapFlags([]cli.Flag{
	cmd.DataDirFlag,
	flags.SlashingProtectionExportDirFlag,
	flags.InterchangeFormatFlag,
})

var importFlags = cmd.WrapFlags([]cli.Flag{
	cmd.DataDirFlag,
	flags.SlashingProtectionJSONFileFlag,
	flags.BackupDirFlag,
	flags.SkipBackupFlag,
})

// Commands for slashing protection.
var Commands = &cli.Command{
	Name:     "slashing-protection-history",
	Category: "slashing-protection-history",
	Usage:    "defines commands for interacting your validator's slashing protection history",
	Subcommands: []*cli.Command{
		{
			Name:        "export",
			Description: `exports your validator slashing protection history into an EIP-3076 compliant JSON`,
			Flags:       exportFlags,
			Before: func(cliCtx *cli.Context) error {
				return cmd.LoadFlagsFromConfig(cliCtx, exportFlags)
			},
			Action: func(cliCtx *cli.Context) error {
				if err := exportSlashingProtectionJSON(cliCtx); err != nil {
					log.WithError(err).Error("Could not export slashing protection file")
					return err
				}
				return nil
			},
		},
		{
			Name:        "import",
			Description: `imports a selected EIP-3076 compliant slashing protection JSON to the validator database`,
			Flags:       importFlags,
			Before: func(cliCtx *cli.Context) error {
				return cmd.LoadFlagsFromConfig(cliCtx, importFlags)
			},
			Action: func(cliCtx *cli.Context) error {
				if err := importSlashingProtectionJSON(cliCtx); err != nil {
					log.WithError(err).Error("Could not import slashing protection file")
					return err
				}
				return nil
			},
		},
	},
}
