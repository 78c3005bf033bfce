package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	fieldparams "github.com/prysmaticlabs/prysm-slashing-protection/config/fieldparams"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_ExportImportFromConfigFile(t *testing.T) {
	ctx := context.Background()
	sourceDir := t.TempDir()
	pk := [fieldparams.BLSPubkeyLength]byte{7}
	validatorDB, err := kv.NewKVStore(ctx, sourceDir, &kv.Config{
		PubKeys:               [][fieldparams.BLSPubkeyLength]byte{pk},
		GenesisValidatorsRoot: []byte{0: 9, 31: 0},
	})
	require.NoError(t, err)
	require.NoError(t, validatorDB.CheckAndInsertAttestation(ctx, pk, 1, 2, [fieldparams.RootLength]byte{3}))
	require.NoError(t, validatorDB.Close())

	exportDir := t.TempDir()
	require.NoError(t, newApp().Run([]string{
		"validator",
		"--log-format", "json",
		"slashing-protection-history", "export",
		"--datadir", sourceDir,
		"--slashing-protection-export-dir", exportDir,
	}))
	exported := filepath.Join(exportDir, "slashing_protection.json")
	require.FileExists(t, exported)

	targetDir := t.TempDir()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("datadir: "+targetDir+"\n"), 0600))
	require.NoError(t, newApp().Run([]string{
		"validator",
		"--config-file", configFile,
		"slashing-protection-history", "import",
		"--slashing-protection-json-file", exported,
	}))

	validatorDB, err = kv.NewKVStore(ctx, targetDir, &kv.Config{})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, validatorDB.Close())
	}()
	source, target, exists, err := validatorDB.AttestationBounds(ctx, pk)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.EqualValues(t, 1, source)
	assert.EqualValues(t, 2, target)
}
