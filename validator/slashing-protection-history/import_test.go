package history

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/prysm-slashing-protection/config/fieldparams"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/slashing-protection-history/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportStandardProtectionJSON_Malformed(t *testing.T) {
	metadata := fmt.Sprintf(`"metadata": {"interchange_format": "complete", "interchange_format_version": "5", "genesis_validators_root": %q}`, genesisRootHex(66))
	validBlock := fmt.Sprintf(`{"pubkey": %q, "signed_blocks": [{"slot": "1"}], "signed_attestations": []}`, pubKeyHex(0))
	tests := []struct {
		name string
		json string
	}{
		{
			name: "not json",
			json: `{"metadata": `,
		},
		{
			name: "number instead of string",
			json: fmt.Sprintf(`{%s, "data": [{"pubkey": %q, "signed_blocks": [{"slot": 1}]}]}`, metadata, pubKeyHex(0)),
		},
		{
			name: "bad public key",
			json: fmt.Sprintf(`{%s, "data": [{"pubkey": "0x1234", "signed_blocks": []}]}`, metadata),
		},
		{
			name: "public key without prefix",
			json: fmt.Sprintf(`{%s, "data": [{"pubkey": %q}]}`, metadata, strings.TrimPrefix(pubKeyHex(0), "0x")),
		},
		{
			name: "bad signing root",
			json: fmt.Sprintf(`{%s, "data": [%s, {"pubkey": %q, "signed_blocks": [{"slot": "2", "signing_root": "0xzz"}]}]}`, metadata, validBlock, pubKeyHex(1)),
		},
		{
			name: "negative slot",
			json: fmt.Sprintf(`{%s, "data": [%s, {"pubkey": %q, "signed_blocks": [{"slot": "-2"}]}]}`, metadata, validBlock, pubKeyHex(1)),
		},
		{
			name: "source greater than target",
			json: fmt.Sprintf(`{%s, "data": [%s, {"pubkey": %q, "signed_attestations": [{"source_epoch": "3", "target_epoch": "2"}]}]}`, metadata, validBlock, pubKeyHex(1)),
		},
		{
			name: "unknown interchange format",
			json: fmt.Sprintf(`{"metadata": {"interchange_format": "partial", "interchange_format_version": "5", "genesis_validators_root": %q}, "data": []}`, genesisRootHex(66)),
		},
		{
			name: "version 4 without interchange format",
			json: fmt.Sprintf(`{"metadata": {"interchange_format_version": "4", "genesis_validators_root": %q}, "data": []}`, genesisRootHex(66)),
		},
		{
			name: "version is not a number",
			json: fmt.Sprintf(`{"metadata": {"interchange_format": "complete", "interchange_format_version": "v5", "genesis_validators_root": %q}, "data": []}`, genesisRootHex(66)),
		},
		{
			name: "short genesis validators root",
			json: `{"metadata": {"interchange_format": "complete", "interchange_format_version": "5", "genesis_validators_root": "0x0102"}, "data": []}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			db := setupDB(t, -1)
			err := ImportStandardProtectionJSON(ctx, db, strings.NewReader(tt.json))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedDocument), "unexpected error %v", err)

			// Nothing was written.
			keys, err := db.RegisteredPublicKeys(ctx)
			require.NoError(t, err)
			assert.Empty(t, keys)
			root, err := db.GenesisValidatorsRoot(ctx)
			require.NoError(t, err)
			assert.Nil(t, root)
		})
	}
}

func TestImportInterchange_MinimalMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []*format.ProtectionData
	}{
		{
			name: "duplicate public key",
			data: []*format.ProtectionData{minimalData(0, "1", "", ""), minimalData(0, "2", "", "")},
		},
		{
			name: "source without target",
			data: []*format.ProtectionData{minimalData(0, "", "1", "")},
		},
		{
			name: "target without source",
			data: []*format.ProtectionData{minimalData(0, "", "", "1")},
		},
		{
			name: "source greater than target",
			data: []*format.ProtectionData{minimalData(0, "", "5", "4")},
		},
		{
			name: "signed blocks in minimal entry",
			data: []*format.ProtectionData{{
				Pubkey:       pubKeyHex(0),
				SignedBlocks: []*format.SignedBlock{{Slot: "1"}},
			}},
		},
		{
			name: "nil entry",
			data: []*format.ProtectionData{minimalData(1, "1", "", ""), nil},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			db := setupDB(t, 0)
			err := ImportInterchange(ctx, db, minimalDocument(tt.data...))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedDocument), "unexpected error %v", err)
			keys, err := db.RegisteredPublicKeys(ctx)
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestImportInterchange_UnsupportedVersion(t *testing.T) {
	for _, version := range []string{"0", "3", "6", "100"} {
		t.Run(version, func(t *testing.T) {
			ctx := context.Background()
			db := setupDB(t, 0)
			doc := minimalDocument(minimalData(0, "1", "", ""))
			doc.Metadata.InterchangeFormatVersion = version
			err := ImportInterchange(ctx, db, doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedVersion), "unexpected error %v", err)
		})
	}
}

func TestImportInterchange_Version4Minimal(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t, 0)
	doc := minimalDocument(minimalData(0, "1", "2", "3"))
	doc.Metadata.InterchangeFormatVersion = "4"
	require.NoError(t, ImportInterchange(ctx, db, doc))

	exported, err := ExportMinimal(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, minimalDocument(minimalData(0, "1", "2", "3")), exported)
}

func TestImportInterchange_Version5WithoutFormatIsComplete(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t, -1)
	root := signingRoot(3)
	input := fmt.Sprintf(`{
		"metadata": {"interchange_format_version": "5", "genesis_validators_root": %q},
		"data": [{
			"pubkey": %q,
			"signed_blocks": [{"slot": "81952", "signing_root": "0x4ff6f743a43f3b4f95350831aeaf0a122a1a392922c45d804280284a69eb850b"}, {"slot": "81951"}],
			"signed_attestations": [{"source_epoch": "2290", "target_epoch": "3007", "signing_root": %q}, {"source_epoch": "2290", "target_epoch": "3008"}]
		}]
	}`, genesisRootHex(66), pubKeyHex(0), fmt.Sprintf("%#x", root))
	require.NoError(t, ImportStandardProtectionJSON(ctx, db, strings.NewReader(input)))

	proposals, err := db.ProposalHistoryForPubKey(ctx, pubKey(0))
	require.NoError(t, err)
	require.Len(t, proposals, 2)
	assert.Equal(t, uint64(81951), uint64(proposals[0].Slot))
	assert.Nil(t, proposals[0].SigningRoot)
	assert.Equal(t, uint64(81952), uint64(proposals[1].Slot))

	attestations, err := db.AttestationHistoryForPubKey(ctx, pubKey(0))
	require.NoError(t, err)
	require.Len(t, attestations, 2)
	assert.Equal(t, root[:], attestations[0].SigningRoot)
	assert.Nil(t, attestations[1].SigningRoot)

	// The imported attestations protect the key.
	assert.Error(t, db.CheckAndInsertAttestation(ctx, pubKey(0), 2291, 3007, signingRoot(4)))
	assert.Error(t, db.CheckAndInsertAttestation(ctx, pubKey(0), 2290, 3008, signingRoot(4)))
}

func TestImportInterchange_GenesisMismatch(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t, 1)
	applyAttestations(t, db, []signedAttestation{{key: 0, source: 1, target: 2, root: 0}})
	before, err := ExportComplete(ctx, db)
	require.NoError(t, err)

	doc := minimalDocument(minimalData(0, "100", "50", "60"), minimalData(1, "1", "", ""))
	doc.Metadata.GenesisValidatorsRoot = genesisRootHex(67)
	err = ImportInterchange(ctx, db, doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenesisMismatch), "unexpected error %v", err)

	after, err := ExportComplete(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestImportInterchange_AdoptsGenesisRoot(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t, -1)
	require.NoError(t, ImportInterchange(ctx, db, minimalDocument(minimalData(0, "1", "", ""))))

	root, err := db.GenesisValidatorsRoot(ctx)
	require.NoError(t, err)
	want := genesisRoot(66)
	assert.Equal(t, want[:], root)
	keys, err := db.RegisteredPublicKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, [][fieldparams.BLSPubkeyLength]byte{pubKey(0)}, keys)
}

func TestImportInterchange_OtherKeysUntouched(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t, 2)
	applyBlocks(t, db, []signedBlock{{key: 1, slot: 3, root: 1}})

	require.NoError(t, ImportInterchange(ctx, db, minimalDocument(minimalData(0, "50", "5", "6"))))

	exported, err := ExportMinimal(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, minimalDocument(
		minimalData(0, "50", "5", "6"),
		minimalData(1, "3", "", ""),
	), exported)
	require.NoError(t, db.CheckAndInsertBlock(ctx, pubKey(1), 4, signingRoot(1)))
}

func TestImportStandardProtectionJSON_ReadsWhatExportWrites(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t, 2)
	applyBlocks(t, db, []signedBlock{{key: 0, slot: 3, root: 1}})
	applyAttestations(t, db, []signedAttestation{
		{key: 0, source: 1, target: 2, root: 1},
		{key: 0, source: 4, target: 6, root: 2},
		{key: 1, source: 7, target: 9, root: 3},
	})

	buf := new(bytes.Buffer)
	require.NoError(t, ExportStandardProtectionJSON(ctx, db, format.Minimal, buf))

	other := setupDB(t, -1)
	require.NoError(t, ImportStandardProtectionJSON(ctx, other, buf))
	exported, err := ExportMinimal(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, minimalDocument(
		minimalData(0, "3", "4", "6"),
		minimalData(1, "", "7", "9"),
	), exported)

	assert.Error(t, other.CheckAndInsertAttestation(ctx, pubKey(0), 4, 6, signingRoot(2)))
	assert.Error(t, other.CheckAndInsertAttestation(ctx, pubKey(1), 6, 10, signingRoot(3)))
	require.NoError(t, other.CheckAndInsertAttestation(ctx, pubKey(1), 9, 10, signingRoot(3)))
}

func TestParseProtectionData_AdvancesProgressPerEntry(t *testing.T) {
	data := []*format.ProtectionData{
		{Pubkey: pubKeyHex(0), SignedBlocks: []*format.SignedBlock{{Slot: "1"}}},
		{Pubkey: pubKeyHex(0), SignedBlocks: []*format.SignedBlock{{Slot: "2"}}},
		{Pubkey: pubKeyHex(1)},
	}
	bar := initializeProgressBar(len(data), "Importing slashing protection history")
	histories, err := parseProtectionData(format.Complete, data, bar)
	require.NoError(t, err)
	require.Len(t, histories, 2)
	assert.Len(t, histories[0].Proposals, 2)
	assert.Equal(t, 1.0, bar.State().CurrentPercent)
}
