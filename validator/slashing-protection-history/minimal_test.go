package history

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/prysm-slashing-protection/validator/slashing-protection-history/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportMinimalTest(
	t *testing.T,
	numKeys int,
	preBlocks []signedBlock,
	preAttestations []signedAttestation,
	imported []*format.ProtectionData,
	postBlocks []signedBlock,
	postAttestations []signedAttestation,
	expected []*format.ProtectionData,
) {
	ctx := context.Background()
	db := setupDB(t, numKeys)

	applyBlocks(t, db, preBlocks)
	applyAttestations(t, db, preAttestations)
	require.NoError(t, ImportInterchange(ctx, db, minimalDocument(imported...)))
	applyBlocks(t, db, postBlocks)
	applyAttestations(t, db, postAttestations)

	exported, err := ExportMinimal(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, minimalDocument(expected...), exported)
}

func TestExportMinimal_ImportIncreasesLowerBound(t *testing.T) {
	imported := []*format.ProtectionData{minimalData(0, "127", "3", "4")}
	exportMinimalTest(
		t, 1,
		[]signedBlock{{key: 0, slot: 126, root: 0}},
		[]signedAttestation{
			{key: 0, source: 0, target: 1, root: 0},
			{key: 0, source: 1, target: 2, root: 0},
			{key: 0, source: 2, target: 3, root: 1},
		},
		imported,
		nil,
		nil,
		[]*format.ProtectionData{minimalData(0, "127", "3", "4")},
	)
}

func TestExportMinimal_AttestationsAndBlocksIncreaseLowerBound(t *testing.T) {
	exportMinimalTest(
		t, 1,
		nil,
		[]signedAttestation{
			{key: 0, source: 0, target: 1, root: 0},
			{key: 0, source: 1, target: 2, root: 0},
			{key: 0, source: 2, target: 3, root: 1},
		},
		[]*format.ProtectionData{minimalData(0, "", "3", "4")},
		[]signedBlock{{key: 0, slot: 245, root: 0}},
		[]signedAttestation{
			{key: 0, source: 4, target: 5, root: 0},
			{key: 0, source: 5, target: 6, root: 0},
			{key: 0, source: 6, target: 8, root: 0},
		},
		[]*format.ProtectionData{minimalData(0, "245", "6", "8")},
	)
}

func TestExportMinimal_MultiMix(t *testing.T) {
	exportMinimalTest(
		t, 2,
		[]signedBlock{{key: 1, slot: 2, root: 0}},
		[]signedAttestation{
			{key: 0, source: 0, target: 1, root: 0},
			{key: 1, source: 0, target: 1, root: 0},
			{key: 0, source: 2, target: 3, root: 1},
			{key: 0, source: 3, target: 4, root: 1},
		},
		[]*format.ProtectionData{
			minimalData(0, "255", "", ""),
			minimalData(1, "", "3", "4"),
		},
		[]signedBlock{{key: 0, slot: 299, root: 0}, {key: 1, slot: 307, root: 0}},
		[]signedAttestation{
			{key: 1, source: 4, target: 5, root: 0},
			{key: 1, source: 5, target: 6, root: 0},
			{key: 1, source: 6, target: 7, root: 0},
		},
		[]*format.ProtectionData{
			minimalData(0, "299", "3", "4"),
			minimalData(1, "307", "6", "7"),
		},
	)
}

func TestExportMinimal_UnsignedCategoriesOmitted(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t, 2)
	applyBlocks(t, db, []signedBlock{{key: 1, slot: 9, root: 0}})

	exported, err := ExportMinimal(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, minimalDocument(
		minimalData(0, "", "", ""),
		minimalData(1, "9", "", ""),
	), exported)
}

func TestImportMinimal_LowerBoundDeniesSigning(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t, 1)
	require.NoError(t, ImportInterchange(ctx, db, minimalDocument(minimalData(0, "100", "10", "20"))))

	assert.Error(t, db.CheckAndInsertBlock(ctx, pubKey(0), 100, signingRoot(1)))
	assert.Error(t, db.CheckAndInsertBlock(ctx, pubKey(0), 99, signingRoot(1)))
	require.NoError(t, db.CheckAndInsertBlock(ctx, pubKey(0), 101, signingRoot(1)))

	assert.Error(t, db.CheckAndInsertAttestation(ctx, pubKey(0), 10, 20, signingRoot(1)))
	assert.Error(t, db.CheckAndInsertAttestation(ctx, pubKey(0), 9, 21, signingRoot(1)))
	assert.Error(t, db.CheckAndInsertAttestation(ctx, pubKey(0), 11, 19, signingRoot(1)))
	require.NoError(t, db.CheckAndInsertAttestation(ctx, pubKey(0), 10, 21, signingRoot(1)))
}

func TestImportMinimal_EqualBoundsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t, 1)
	doc := minimalDocument(minimalData(0, "5", "1", "2"))
	require.NoError(t, ImportInterchange(ctx, db, doc))
	first, err := ExportMinimal(ctx, db)
	require.NoError(t, err)

	require.NoError(t, ImportInterchange(ctx, db, doc))
	second, err := ExportMinimal(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, doc, second)
}
