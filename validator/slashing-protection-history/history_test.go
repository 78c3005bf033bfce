package history

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	fieldparams "github.com/prysmaticlabs/prysm-slashing-protection/config/fieldparams"
	types "github.com/prysmaticlabs/prysm-slashing-protection/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/iface"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/kv"
	dbtest "github.com/prysmaticlabs/prysm-slashing-protection/validator/db/testing"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/slashing-protection-history/format"
	"github.com/stretchr/testify/require"
)

func pubKey(i int) [fieldparams.BLSPubkeyLength]byte {
	var pk [fieldparams.BLSPubkeyLength]byte
	pk[0] = byte(i + 1)
	return pk
}

func pubKeyHex(i int) string {
	pk := pubKey(i)
	return hexutil.Encode(pk[:])
}

func signingRoot(i int) [fieldparams.RootLength]byte {
	var root [fieldparams.RootLength]byte
	root[0] = byte(i + 1)
	root[1] = 0xaa
	return root
}

func genesisRoot(i int) [fieldparams.RootLength]byte {
	var root [fieldparams.RootLength]byte
	root[fieldparams.RootLength-1] = byte(i)
	return root
}

func genesisRootHex(i int) string {
	root := genesisRoot(i)
	return hexutil.Encode(root[:])
}

// setupDB returns a database with the first numKeys test keys registered and
// genesis root 66, or no genesis root when numKeys is negative.
func setupDB(t *testing.T, numKeys int) iface.ValidatorDB {
	if numKeys < 0 {
		return dbtest.SetupDB(t, nil)
	}
	keys := make([][fieldparams.BLSPubkeyLength]byte, numKeys)
	for i := range keys {
		keys[i] = pubKey(i)
	}
	root := genesisRoot(66)
	return dbtest.SetupDB(t, &kv.Config{PubKeys: keys, GenesisValidatorsRoot: root[:]})
}

type signedBlock struct {
	key  int
	slot types.Slot
	root int
}

type signedAttestation struct {
	key            int
	source, target types.Epoch
	root           int
}

func applyBlocks(t *testing.T, db iface.ValidatorDB, blocks []signedBlock) {
	for _, b := range blocks {
		require.NoError(t, db.CheckAndInsertBlock(context.Background(), pubKey(b.key), b.slot, signingRoot(b.root)))
	}
}

func applyAttestations(t *testing.T, db iface.ValidatorDB, atts []signedAttestation) {
	for _, a := range atts {
		require.NoError(t, db.CheckAndInsertAttestation(
			context.Background(), pubKey(a.key), a.source, a.target, signingRoot(a.root),
		))
	}
}

func minimalData(key int, slot, source, target string) *format.ProtectionData {
	return &format.ProtectionData{
		Pubkey:                           pubKeyHex(key),
		LastSignedBlockSlot:              slot,
		LastSignedAttestationSourceEpoch: source,
		LastSignedAttestationTargetEpoch: target,
	}
}

func minimalDocument(data ...*format.ProtectionData) *format.EIPSlashingProtectionFormat {
	return &format.EIPSlashingProtectionFormat{
		Metadata: format.Metadata{
			InterchangeFormat:        "minimal",
			InterchangeFormatVersion: "5",
			GenesisValidatorsRoot:    genesisRootHex(66),
		},
		Data: data,
	}
}
