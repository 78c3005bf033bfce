package kv

import (
	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/prysm-slashing-protection/config/fieldparams"
	types "github.com/prysmaticlabs/prysm-slashing-protection/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-slashing-protection/encoding/bytesutil"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/common"
	bolt "go.etcd.io/bbolt"
)

// Proposals are keyed by big endian slot and hold the 32 byte signing root.
// Attestations are keyed by big endian target epoch and hold the big endian
// source epoch followed by the 32 byte signing root. A zero signing root is
// stored for messages whose root is unknown.

const attestationValueLength = 8 + fieldparams.RootLength

func encodeRoot(root []byte) []byte {
	enc := make([]byte, fieldparams.RootLength)
	if len(root) == fieldparams.RootLength {
		copy(enc, root)
	}
	return enc
}

func decodeRoot(enc []byte) []byte {
	if len(enc) != fieldparams.RootLength || bytesutil.ZeroRoot(enc) {
		return nil
	}
	return bytesutil.SafeCopyBytes(enc)
}

func decodeProposal(k, v []byte) (*common.Proposal, error) {
	if len(k) != 8 || len(v) != fieldparams.RootLength {
		return nil, errors.Errorf("corrupted proposal record of key length %d and value length %d", len(k), len(v))
	}
	return &common.Proposal{
		Slot:        bytesutil.BytesToSlotBigEndian(k),
		SigningRoot: decodeRoot(v),
	}, nil
}

func decodeAttestation(k, v []byte) (*common.AttestationRecord, error) {
	if len(k) != 8 || len(v) != attestationValueLength {
		return nil, errors.Errorf("corrupted attestation record of key length %d and value length %d", len(k), len(v))
	}
	return &common.AttestationRecord{
		Source:      bytesutil.BytesToEpochBigEndian(v[:8]),
		Target:      bytesutil.BytesToEpochBigEndian(k),
		SigningRoot: decodeRoot(v[8:]),
	}, nil
}

func encodeAttestation(source types.Epoch, signingRoot []byte) []byte {
	enc := make([]byte, 0, attestationValueLength)
	enc = append(enc, bytesutil.EpochToBytesBigEndian(source)...)
	return append(enc, encodeRoot(signingRoot)...)
}

// highestProposal returns the proposal with the highest slot, nil if none.
func highestProposal(pkBucket *bolt.Bucket) (*common.Proposal, error) {
	k, v := pkBucket.Bucket(proposalHistoryBucket).Cursor().Last()
	if k == nil {
		return nil, nil
	}
	return decodeProposal(k, v)
}

func proposalHistory(pkBucket *bolt.Bucket) ([]*common.Proposal, error) {
	var proposals []*common.Proposal
	err := pkBucket.Bucket(proposalHistoryBucket).ForEach(func(k, v []byte) error {
		p, err := decodeProposal(k, v)
		if err != nil {
			return err
		}
		proposals = append(proposals, p)
		return nil
	})
	return proposals, err
}

func attestationHistory(pkBucket *bolt.Bucket) ([]*common.AttestationRecord, error) {
	var records []*common.AttestationRecord
	err := pkBucket.Bucket(attestationHistoryBucket).ForEach(func(k, v []byte) error {
		rec, err := decodeAttestation(k, v)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	return records, err
}

func putProposal(pkBucket *bolt.Bucket, slot types.Slot, signingRoot []byte) error {
	return pkBucket.Bucket(proposalHistoryBucket).Put(bytesutil.SlotToBytesBigEndian(slot), encodeRoot(signingRoot))
}

func putAttestation(pkBucket *bolt.Bucket, source, target types.Epoch, signingRoot []byte) error {
	return pkBucket.Bucket(attestationHistoryBucket).Put(
		bytesutil.EpochToBytesBigEndian(target),
		encodeAttestation(source, signingRoot),
	)
}

func lowerBounds(pkBucket *bolt.Bucket) *common.LowerBounds {
	bkt := pkBucket.Bucket(lowerBoundsBucket)
	bounds := &common.LowerBounds{}
	if enc := bkt.Get(lowestBlockSlotKey); len(enc) == 8 {
		slot := bytesutil.BytesToSlotBigEndian(enc)
		bounds.BlockSlot = &slot
	}
	if enc := bkt.Get(lowestAttestationSourceKey); len(enc) == 8 {
		source := bytesutil.BytesToEpochBigEndian(enc)
		bounds.AttestationSource = &source
	}
	if enc := bkt.Get(lowestAttestationTargetKey); len(enc) == 8 {
		target := bytesutil.BytesToEpochBigEndian(enc)
		bounds.AttestationTarget = &target
	}
	return bounds
}

func targetKey(target types.Epoch) []byte {
	return bytesutil.EpochToBytesBigEndian(target)
}

func putLowerBound(pkBucket *bolt.Bucket, key []byte, value uint64) error {
	return pkBucket.Bucket(lowerBoundsBucket).Put(key, bytesutil.Uint64ToBytesBigEndian(value))
}
