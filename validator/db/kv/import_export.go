package kv

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/prysm-slashing-protection/config/fieldparams"
	types "github.com/prysmaticlabs/prysm-slashing-protection/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-slashing-protection/encoding/bytesutil"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/common"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/slashing-protection/rules"
	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// LowerBoundsForPubKey returns the lower bounds imported for a public key.
// Bounds that were never imported are nil.
func (s *Store) LowerBoundsForPubKey(
	ctx context.Context, pubKey [fieldparams.BLSPubkeyLength]byte,
) (*common.LowerBounds, error) {
	_, span := trace.StartSpan(ctx, "Validator.LowerBoundsForPubKey")
	defer span.End()
	var bounds *common.LowerBounds
	err := s.view(func(tx *bolt.Tx) error {
		pkBucket, err := pubKeyBucket(tx, pubKey)
		if err != nil {
			return err
		}
		bounds = lowerBounds(pkBucket)
		return nil
	})
	return bounds, err
}

// MergeProtectionHistory merges imported slashing protection histories into the
// database in a single transaction. genesisValidatorsRoot is saved when the
// database has none and must match the stored root otherwise.
//
// Unseen keys are registered. Proposals and attestations are only added at slots
// and targets without a record, existing records always win. Records at or
// below the stored lower bounds are skipped. Lower bounds are
// raised to the maximum of the stored and imported values and never lowered.
// Keys absent from histories are not touched. On error nothing is written.
func (s *Store) MergeProtectionHistory(
	ctx context.Context,
	genesisValidatorsRoot []byte,
	histories []*common.ProtectionHistory,
) error {
	ctx, span := trace.StartSpan(ctx, "Validator.MergeProtectionHistory")
	defer span.End()
	if err := ctx.Err(); err != nil {
		return err
	}

	pubKeys := make([][fieldparams.BLSPubkeyLength]byte, len(histories))
	for i, h := range histories {
		pubKeys[i] = h.PubKey
	}
	unlock := s.lockPubKeys(pubKeys)
	defer unlock()

	var conflicts []logrus.Fields
	if err := s.update(func(tx *bolt.Tx) error {
		conflicts = nil
		if len(genesisValidatorsRoot) > 0 {
			if err := putGenesisValidatorsRoot(tx.Bucket(genesisInfoBucket), genesisValidatorsRoot); err != nil {
				return err
			}
		}
		bucket := tx.Bucket(pubKeysBucket)
		for _, h := range histories {
			pkBucket, err := createPubKeyBuckets(bucket, h.PubKey)
			if err != nil {
				return errors.Wrapf(err, "could not register public key %#x", bytesutil.Trunc(h.PubKey[:]))
			}
			keyConflicts, err := mergeHistory(pkBucket, h)
			if err != nil {
				return errors.Wrapf(err, "could not merge history of public key %#x", bytesutil.Trunc(h.PubKey[:]))
			}
			conflicts = append(conflicts, keyConflicts...)
		}
		return nil
	}); err != nil {
		return err
	}

	for _, pubKey := range pubKeys {
		s.registeredKeys.Add(pubKey, struct{}{})
	}
	for _, fields := range conflicts {
		log.WithFields(fields).Warn("Imported slashing protection record conflicts with an existing record, keeping existing")
	}
	return nil
}

func mergeHistory(pkBucket *bolt.Bucket, h *common.ProtectionHistory) ([]logrus.Fields, error) {
	var conflicts []logrus.Fields
	pubKey := bytesutil.Trunc(h.PubKey[:])
	stored := lowerBounds(pkBucket)

	proposals := pkBucket.Bucket(proposalHistoryBucket)
	for _, p := range h.Proposals {
		existing := proposals.Get(bytesutil.SlotToBytesBigEndian(p.Slot))
		if existing != nil {
			if !bytes.Equal(existing, encodeRoot(p.SigningRoot)) {
				conflicts = append(conflicts, logrus.Fields{
					"pubKey":   pubKey,
					"existing": &common.Proposal{Slot: p.Slot, SigningRoot: decodeRoot(existing)},
					"imported": p,
				})
			}
			continue
		}
		// Records at or below a stored bound would shadow it with a known root.
		if stored.BlockSlot != nil && p.Slot <= *stored.BlockSlot {
			conflicts = append(conflicts, logrus.Fields{
				"pubKey":   pubKey,
				"existing": &common.Proposal{Slot: *stored.BlockSlot},
				"imported": p,
			})
			continue
		}
		if err := putProposal(pkBucket, p.Slot, p.SigningRoot); err != nil {
			return nil, err
		}
	}

	attestations := pkBucket.Bucket(attestationHistoryBucket)
	for _, a := range h.Attestations {
		k := targetKey(a.Target)
		existing := attestations.Get(k)
		if existing != nil {
			if !bytes.Equal(existing, encodeAttestation(a.Source, a.SigningRoot)) {
				rec, err := decodeAttestation(k, existing)
				if err != nil {
					return nil, err
				}
				conflicts = append(conflicts, logrus.Fields{
					"pubKey":   pubKey,
					"existing": rec,
					"imported": a,
				})
			}
			continue
		}
		if stored.AttestationSource != nil && stored.AttestationTarget != nil &&
			(a.Target <= *stored.AttestationTarget || a.Source < *stored.AttestationSource) {
			conflicts = append(conflicts, logrus.Fields{
				"pubKey":   pubKey,
				"existing": &common.AttestationRecord{Source: *stored.AttestationSource, Target: *stored.AttestationTarget},
				"imported": a,
			})
			continue
		}
		if err := putAttestation(pkBucket, a.Source, a.Target, a.SigningRoot); err != nil {
			return nil, err
		}
	}

	if h.Bounds != nil {
		if err := mergeLowerBounds(pkBucket, h.Bounds); err != nil {
			return nil, err
		}
	}
	return conflicts, nil
}

// mergeLowerBounds raises the stored bounds to the imported ones. A bound is only
// written when the imported value is strictly higher than what the key already
// signed, so importing the same bounds twice writes nothing.
func mergeLowerBounds(pkBucket *bolt.Bucket, imported *common.LowerBounds) error {
	stored := lowerBounds(pkBucket)

	if imported.BlockSlot != nil {
		latest, err := highestProposal(pkBucket)
		if err != nil {
			return err
		}
		effective := rules.EffectiveProposal(latest, stored)
		if effective == nil || *imported.BlockSlot > effective.Slot {
			if err := putLowerBound(pkBucket, lowestBlockSlotKey, uint64(*imported.BlockSlot)); err != nil {
				return err
			}
		}
	}

	if imported.AttestationSource != nil && imported.AttestationTarget != nil {
		records, err := attestationHistory(pkBucket)
		if err != nil {
			return err
		}
		source, target, exists := maxAttestationEpochs(rules.EffectiveAttestations(records, stored))
		newSource, newTarget := *imported.AttestationSource, *imported.AttestationTarget
		if exists {
			newSource = types.MaxEpoch(source, newSource)
			newTarget = types.MaxEpoch(target, newTarget)
		}
		if !exists || newSource > source || newTarget > target {
			if err := putLowerBound(pkBucket, lowestAttestationSourceKey, uint64(newSource)); err != nil {
				return err
			}
			if err := putLowerBound(pkBucket, lowestAttestationTargetKey, uint64(newTarget)); err != nil {
				return err
			}
		}
	}
	return nil
}
