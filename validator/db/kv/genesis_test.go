package kv

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GenesisValidatorsRoot_ReadAndWrite(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t, nil)

	root, err := db.GenesisValidatorsRoot(ctx)
	require.NoError(t, err)
	assert.Nil(t, root)

	first := signingRoot(1)
	require.NoError(t, db.SaveGenesisValidatorsRoot(ctx, first[:]))
	root, err = db.GenesisValidatorsRoot(ctx)
	require.NoError(t, err)
	assert.Equal(t, first[:], root)

	// Saving the same root again is accepted.
	require.NoError(t, db.SaveGenesisValidatorsRoot(ctx, first[:]))

	second := signingRoot(2)
	err = db.SaveGenesisValidatorsRoot(ctx, second[:])
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrGenesisValidatorsRootMismatch))

	root, err = db.GenesisValidatorsRoot(ctx)
	require.NoError(t, err)
	assert.Equal(t, first[:], root)
}
