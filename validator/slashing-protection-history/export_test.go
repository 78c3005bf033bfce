package history

import (
	"bytes"
	"context"
	"testing"

	"github.com/prysmaticlabs/prysm-slashing-protection/validator/slashing-protection-history/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportStandardProtectionJSON_EmptyGenesisRoot(t *testing.T) {
	ctx := context.Background()
	validatorDB := setupDB(t, -1)
	require.NoError(t, validatorDB.UpdatePublicKeysBuckets([][48]byte{pubKey(0)}))

	err := ExportStandardProtectionJSON(ctx, validatorDB, format.Complete, new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "genesis validators root is empty")

	genesisValidatorsRoot := genesisRoot(1)
	require.NoError(t, validatorDB.SaveGenesisValidatorsRoot(ctx, genesisValidatorsRoot[:]))
	require.NoError(t, ExportStandardProtectionJSON(ctx, validatorDB, format.Complete, new(bytes.Buffer)))
}

func TestExportStandardProtectionJSON_UnknownFormat(t *testing.T) {
	validatorDB := setupDB(t, 1)
	err := ExportStandardProtectionJSON(context.Background(), validatorDB, format.Kind("partial"), new(bytes.Buffer))
	require.Error(t, err)
}

func TestExportComplete(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t, 2)
	applyBlocks(t, db, []signedBlock{
		{key: 1, slot: 5, root: 1},
		{key: 0, slot: 7, root: 2},
		{key: 0, slot: 8, root: 3},
	})
	applyAttestations(t, db, []signedAttestation{
		{key: 0, source: 1, target: 2, root: 5},
		{key: 0, source: 2, target: 3, root: 4},
	})

	exported, err := ExportComplete(ctx, db)
	require.NoError(t, err)
	root := func(i int) string {
		r := signingRoot(i)
		s, err := rootToHexString(r[:])
		require.NoError(t, err)
		return s
	}
	assert.Equal(t, &format.EIPSlashingProtectionFormat{
		Metadata: format.Metadata{
			InterchangeFormat:        "complete",
			InterchangeFormatVersion: "5",
			GenesisValidatorsRoot:    genesisRootHex(66),
		},
		Data: []*format.ProtectionData{
			{
				Pubkey: pubKeyHex(0),
				SignedBlocks: []*format.SignedBlock{
					{Slot: "7", SigningRoot: root(2)},
					{Slot: "8", SigningRoot: root(3)},
				},
				SignedAttestations: []*format.SignedAttestation{
					{SourceEpoch: "1", TargetEpoch: "2", SigningRoot: root(5)},
					{SourceEpoch: "2", TargetEpoch: "3", SigningRoot: root(4)},
				},
			},
			{
				Pubkey:             pubKeyHex(1),
				SignedBlocks:       []*format.SignedBlock{{Slot: "5", SigningRoot: root(1)}},
				SignedAttestations: []*format.SignedAttestation{},
			},
		},
	}, exported)
}

func TestExportComplete_IncludesLowerBounds(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t, 1)
	applyBlocks(t, db, []signedBlock{{key: 0, slot: 3, root: 1}})
	applyAttestations(t, db, []signedAttestation{{key: 0, source: 1, target: 2, root: 1}})
	require.NoError(t, ImportInterchange(ctx, db, minimalDocument(minimalData(0, "10", "4", "5"))))

	exported, err := ExportComplete(ctx, db)
	require.NoError(t, err)
	require.Len(t, exported.Data, 1)
	blocks := exported.Data[0].SignedBlocks
	require.Len(t, blocks, 2)
	assert.Equal(t, &format.SignedBlock{Slot: "10"}, blocks[1])
	atts := exported.Data[0].SignedAttestations
	require.Len(t, atts, 2)
	assert.Equal(t, &format.SignedAttestation{SourceEpoch: "4", TargetEpoch: "5"}, atts[1])
}

func TestExportComplete_LowerBoundReplacesRecordAtSameTarget(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t, 1)
	applyAttestations(t, db, []signedAttestation{{key: 0, source: 2, target: 5, root: 1}})
	require.NoError(t, ImportInterchange(ctx, db, minimalDocument(minimalData(0, "", "4", "5"))))

	exported, err := ExportComplete(ctx, db)
	require.NoError(t, err)
	require.Len(t, exported.Data, 1)
	assert.Equal(t, []*format.SignedAttestation{{SourceEpoch: "4", TargetEpoch: "5"}}, exported.Data[0].SignedAttestations)

	other := setupDB(t, -1)
	require.NoError(t, ImportInterchange(ctx, other, exported))
	assert.Error(t, other.CheckAndInsertAttestation(ctx, pubKey(0), 2, 5, signingRoot(1)))
	assert.Error(t, other.CheckAndInsertAttestation(ctx, pubKey(0), 3, 6, signingRoot(1)))
	require.NoError(t, other.CheckAndInsertAttestation(ctx, pubKey(0), 4, 6, signingRoot(1)))
}

func TestExportComplete_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t, 3)
	applyBlocks(t, db, []signedBlock{
		{key: 0, slot: 1, root: 1},
		{key: 0, slot: 4, root: 2},
		{key: 2, slot: 9, root: 3},
	})
	applyAttestations(t, db, []signedAttestation{
		{key: 0, source: 0, target: 1, root: 1},
		{key: 0, source: 1, target: 3, root: 2},
		{key: 1, source: 5, target: 6, root: 3},
	})
	require.NoError(t, db.SaveAttestationForPubKey(ctx, pubKey(2), 2, 4, nil))
	require.NoError(t, ImportInterchange(ctx, db, minimalDocument(minimalData(1, "20", "7", "8"))))

	first := new(bytes.Buffer)
	require.NoError(t, ExportStandardProtectionJSON(ctx, db, format.Complete, first))
	firstCopy := first.String()

	restored := setupDB(t, -1)
	require.NoError(t, ImportStandardProtectionJSON(ctx, restored, first))

	second := new(bytes.Buffer)
	require.NoError(t, ExportStandardProtectionJSON(ctx, restored, format.Complete, second))
	assert.Equal(t, firstCopy, second.String())

	// Importing the same document again changes nothing.
	require.NoError(t, ImportStandardProtectionJSON(ctx, restored, bytes.NewBufferString(firstCopy)))
	third := new(bytes.Buffer)
	require.NoError(t, ExportStandardProtectionJSON(ctx, restored, format.Complete, third))
	assert.Equal(t, firstCopy, third.String())

	// The restored database protects the same messages.
	assert.Error(t, restored.CheckAndInsertBlock(ctx, pubKey(0), 4, signingRoot(9)))
	require.NoError(t, restored.CheckAndInsertBlock(ctx, pubKey(0), 4, signingRoot(2)))
	assert.Error(t, restored.CheckAndInsertBlock(ctx, pubKey(1), 20, signingRoot(9)))
	assert.Error(t, restored.CheckAndInsertAttestation(ctx, pubKey(1), 6, 8, signingRoot(9)))
	assert.Error(t, restored.CheckAndInsertAttestation(ctx, pubKey(2), 2, 4, signingRoot(9)))
}

func TestExportStandardProtectionJSON_Deterministic(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t, 4)
	for i := 3; i >= 0; i-- {
		applyBlocks(t, db, []signedBlock{{key: i, slot: 10, root: i}})
	}
	first := new(bytes.Buffer)
	require.NoError(t, ExportStandardProtectionJSON(ctx, db, format.Minimal, first))
	second := new(bytes.Buffer)
	require.NoError(t, ExportStandardProtectionJSON(ctx, db, format.Minimal, second))
	assert.Equal(t, first.String(), second.String())

	exported, err := ExportMinimal(ctx, db)
	require.NoError(t, err)
	for i, data := range exported.Data {
		assert.Equal(t, pubKeyHex(i), data.Pubkey)
	}
}
