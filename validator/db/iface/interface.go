// Package iface defines an interface for the validator database.
package iface

import (
	"context"
	"io"

	fieldparams "github.com/prysmaticlabs/prysm-slashing-protection/config/fieldparams"
	types "github.com/prysmaticlabs/prysm-slashing-protection/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/common"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/kv"
)

// Ensure the kv store implements the interface.
var _ = ValidatorDB(&kv.Store{})

// ValidatorDB defines the necessary methods for a validator slashing protection DB.
type ValidatorDB interface {
	io.Closer
	DatabasePath() string
	ClearDB() error
	Backup(ctx context.Context, outputDir string, permissionOverride bool) (string, error)
	UpdatePublicKeysBuckets(publicKeys [][fieldparams.BLSPubkeyLength]byte) error
	RegisteredPublicKeys(ctx context.Context) ([][fieldparams.BLSPubkeyLength]byte, error)

	// Genesis information related methods.
	GenesisValidatorsRoot(ctx context.Context) ([]byte, error)
	SaveGenesisValidatorsRoot(ctx context.Context, genValRoot []byte) error

	// Proposer protection related methods.
	HighestSignedProposal(ctx context.Context, publicKey [fieldparams.BLSPubkeyLength]byte) (*common.Proposal, bool, error)
	ProposalHistoryForPubKey(ctx context.Context, publicKey [fieldparams.BLSPubkeyLength]byte) ([]*common.Proposal, error)
	SaveProposalHistoryForSlot(ctx context.Context, pubKey [fieldparams.BLSPubkeyLength]byte, slot types.Slot, signingRoot []byte) error
	CheckAndInsertBlock(
		ctx context.Context, pubKey [fieldparams.BLSPubkeyLength]byte, slot types.Slot, signingRoot [fieldparams.RootLength]byte,
	) error

	// Attester protection related methods.
	AttestationHistoryForPubKey(ctx context.Context, pubKey [fieldparams.BLSPubkeyLength]byte) ([]*common.AttestationRecord, error)
	AttestationBounds(
		ctx context.Context, pubKey [fieldparams.BLSPubkeyLength]byte,
	) (source, target types.Epoch, exists bool, err error)
	SaveAttestationForPubKey(
		ctx context.Context, pubKey [fieldparams.BLSPubkeyLength]byte, source, target types.Epoch, signingRoot []byte,
	) error
	CheckAndInsertAttestation(
		ctx context.Context,
		pubKey [fieldparams.BLSPubkeyLength]byte,
		source, target types.Epoch,
		signingRoot [fieldparams.RootLength]byte,
	) error

	// Slashing protection interchange related methods.
	LowerBoundsForPubKey(ctx context.Context, pubKey [fieldparams.BLSPubkeyLength]byte) (*common.LowerBounds, error)
	MergeProtectionHistory(ctx context.Context, genesisValidatorsRoot []byte, histories []*common.ProtectionHistory) error
}
