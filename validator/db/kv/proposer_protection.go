package kv

import (
	"context"

	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/prysm-slashing-protection/config/fieldparams"
	types "github.com/prysmaticlabs/prysm-slashing-protection/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-slashing-protection/encoding/bytesutil"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/common"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/slashing-protection/rules"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// ProposalHistoryForPubKey returns every stored proposal of a public key in
// ascending slot order.
func (s *Store) ProposalHistoryForPubKey(ctx context.Context, pubKey [fieldparams.BLSPubkeyLength]byte) ([]*common.Proposal, error) {
	_, span := trace.StartSpan(ctx, "Validator.ProposalHistoryForPubKey")
	defer span.End()
	var proposals []*common.Proposal
	err := s.view(func(tx *bolt.Tx) error {
		pkBucket, err := pubKeyBucket(tx, pubKey)
		if err != nil {
			return err
		}
		proposals, err = proposalHistory(pkBucket)
		return err
	})
	return proposals, err
}

// HighestSignedProposal returns the proposal the slashing rules compare new blocks
// against: the highest stored proposal, or the imported block lower bound with an
// unknown root when that bound is higher.
func (s *Store) HighestSignedProposal(
	ctx context.Context, pubKey [fieldparams.BLSPubkeyLength]byte,
) (*common.Proposal, bool, error) {
	_, span := trace.StartSpan(ctx, "Validator.HighestSignedProposal")
	defer span.End()
	var highest *common.Proposal
	err := s.view(func(tx *bolt.Tx) error {
		pkBucket, err := pubKeyBucket(tx, pubKey)
		if err != nil {
			return err
		}
		latest, err := highestProposal(pkBucket)
		if err != nil {
			return err
		}
		highest = rules.EffectiveProposal(latest, lowerBounds(pkBucket))
		return nil
	})
	return highest, highest != nil, err
}

// SaveProposalHistoryForSlot saves the proposal history for the requested validator public key
// without checking the slashing rules.
func (s *Store) SaveProposalHistoryForSlot(
	ctx context.Context,
	pubKey [fieldparams.BLSPubkeyLength]byte,
	slot types.Slot,
	signingRoot []byte,
) error {
	_, span := trace.StartSpan(ctx, "Validator.SaveProposalHistoryForSlot")
	defer span.End()
	return s.update(func(tx *bolt.Tx) error {
		pkBucket, err := pubKeyBucket(tx, pubKey)
		if err != nil {
			return err
		}
		return errors.Wrap(putProposal(pkBucket, slot, signingRoot), "could not save proposal")
	})
}

// CheckAndInsertBlock atomically evaluates a proposal at slot against the signing
// history of the key and records it when it is safe. A slashable proposal is
// rejected with a *rules.SlashingError and nothing is written.
func (s *Store) CheckAndInsertBlock(
	ctx context.Context,
	pubKey [fieldparams.BLSPubkeyLength]byte,
	slot types.Slot,
	signingRoot [fieldparams.RootLength]byte,
) error {
	ctx, span := trace.StartSpan(ctx, "Validator.CheckAndInsertBlock")
	defer span.End()
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ensureRegistered(pubKey); err != nil {
		return err
	}
	unlock := s.lockPubKey(pubKey)
	defer unlock()

	return s.batch(func(tx *bolt.Tx) error {
		pkBucket, err := pubKeyBucket(tx, pubKey)
		if err != nil {
			return err
		}
		latest, err := highestProposal(pkBucket)
		if err != nil {
			return err
		}
		effective := rules.EffectiveProposal(latest, lowerBounds(pkBucket))
		if err := rules.CheckBlock(effective, slot, signingRoot); err != nil {
			return err
		}
		if effective != nil && effective.Slot == slot {
			// Identical repeat of a recorded proposal.
			return nil
		}
		return errors.Wrapf(putProposal(pkBucket, slot, signingRoot[:]), "could not save proposal at slot %d", slot)
	})
}

func (s *Store) ensureRegistered(pubKey [fieldparams.BLSPubkeyLength]byte) error {
	registered, err := s.isRegistered(pubKey)
	if err != nil {
		return errors.Wrap(err, "could not check public key registration")
	}
	if !registered {
		return errors.Wrapf(common.ErrKeyNotRegistered, "public key %#x", bytesutil.Trunc(pubKey[:]))
	}
	return nil
}
