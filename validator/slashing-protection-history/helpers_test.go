package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubKeyFromHex(t *testing.T) {
	pk, err := PubKeyFromHex(pubKeyHex(3))
	require.NoError(t, err)
	assert.Equal(t, pubKey(3), pk)

	_, err = PubKeyFromHex("0x0102")
	assert.Error(t, err)
	_, err = PubKeyFromHex("not hex")
	assert.Error(t, err)
}

func TestRootFromHex(t *testing.T) {
	root, err := RootFromHex(genesisRootHex(66))
	require.NoError(t, err)
	assert.Equal(t, genesisRoot(66), root)

	_, err = RootFromHex("0x")
	assert.Error(t, err)
	_, err = RootFromHex(genesisRootHex(66) + "00")
	assert.Error(t, err)
}
