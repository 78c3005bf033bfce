package kv

import (
	"context"

	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/prysm-slashing-protection/config/fieldparams"
	types "github.com/prysmaticlabs/prysm-slashing-protection/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/common"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/slashing-protection/rules"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// AttestationHistoryForPubKey returns every stored attestation of a public key in
// ascending target order.
func (s *Store) AttestationHistoryForPubKey(
	ctx context.Context, pubKey [fieldparams.BLSPubkeyLength]byte,
) ([]*common.AttestationRecord, error) {
	_, span := trace.StartSpan(ctx, "Validator.AttestationHistoryForPubKey")
	defer span.End()
	var records []*common.AttestationRecord
	err := s.view(func(tx *bolt.Tx) error {
		pkBucket, err := pubKeyBucket(tx, pubKey)
		if err != nil {
			return err
		}
		records, err = attestationHistory(pkBucket)
		return err
	})
	return records, err
}

// AttestationBounds returns the highest source and the highest target epoch signed
// by a public key, imported lower bounds included. The two maxima may come from
// different votes. exists is false when nothing was ever signed.
func (s *Store) AttestationBounds(
	ctx context.Context, pubKey [fieldparams.BLSPubkeyLength]byte,
) (source, target types.Epoch, exists bool, err error) {
	_, span := trace.StartSpan(ctx, "Validator.AttestationBounds")
	defer span.End()
	err = s.view(func(tx *bolt.Tx) error {
		pkBucket, err := pubKeyBucket(tx, pubKey)
		if err != nil {
			return err
		}
		records, err := attestationHistory(pkBucket)
		if err != nil {
			return err
		}
		source, target, exists = maxAttestationEpochs(rules.EffectiveAttestations(records, lowerBounds(pkBucket)))
		return nil
	})
	return
}

// SaveAttestationForPubKey saves an attestation for a public key without checking
// the slashing rules. A vote already stored at the same target is replaced.
func (s *Store) SaveAttestationForPubKey(
	ctx context.Context,
	pubKey [fieldparams.BLSPubkeyLength]byte,
	source, target types.Epoch,
	signingRoot []byte,
) error {
	_, span := trace.StartSpan(ctx, "Validator.SaveAttestationForPubKey")
	defer span.End()
	return s.update(func(tx *bolt.Tx) error {
		pkBucket, err := pubKeyBucket(tx, pubKey)
		if err != nil {
			return err
		}
		return errors.Wrap(putAttestation(pkBucket, source, target, signingRoot), "could not save attestation")
	})
}

// CheckAndInsertAttestation atomically evaluates the vote (source, target) against
// the signing history of the key and records it when it is safe. A slashable vote
// is rejected with a *rules.SlashingError and nothing is written.
func (s *Store) CheckAndInsertAttestation(
	ctx context.Context,
	pubKey [fieldparams.BLSPubkeyLength]byte,
	source, target types.Epoch,
	signingRoot [fieldparams.RootLength]byte,
) error {
	ctx, span := trace.StartSpan(ctx, "Validator.CheckAndInsertAttestation")
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
		bkt := pkBucket.Bucket(attestationHistoryBucket)
		records, err := attestationHistory(pkBucket)
		if err != nil {
			return err
		}
		effective := rules.EffectiveAttestations(records, lowerBounds(pkBucket))
		if err := rules.CheckAttestation(effective, source, target, signingRoot); err != nil {
			return err
		}
		if bkt.Get(targetKey(target)) != nil {
			// Identical repeat of a recorded vote.
			return nil
		}
		return errors.Wrapf(
			putAttestation(pkBucket, source, target, signingRoot[:]),
			"could not save attestation with source %d and target %d", source, target,
		)
	})
}

func maxAttestationEpochs(records []*common.AttestationRecord) (source, target types.Epoch, exists bool) {
	for _, rec := range records {
		if !exists || rec.Source > source {
			source = rec.Source
		}
		if !exists || rec.Target > target {
			target = rec.Target
		}
		exists = true
	}
	return
}
