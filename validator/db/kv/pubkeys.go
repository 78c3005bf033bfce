package kv

import (
	"context"

	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/prysm-slashing-protection/config/fieldparams"
	"github.com/prysmaticlabs/prysm-slashing-protection/encoding/bytesutil"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/common"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// UpdatePublicKeysBuckets registers the given public keys, creating their history
// buckets. Keys that are already registered are left untouched.
func (s *Store) UpdatePublicKeysBuckets(pubKeys [][fieldparams.BLSPubkeyLength]byte) error {
	if err := s.update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(pubKeysBucket)
		for _, pubKey := range pubKeys {
			if _, err := createPubKeyBuckets(bucket, pubKey); err != nil {
				return errors.Wrapf(err, "could not register public key %#x", bytesutil.Trunc(pubKey[:]))
			}
		}
		return nil
	}); err != nil {
		return err
	}
	for _, pubKey := range pubKeys {
		s.registeredKeys.Add(pubKey, struct{}{})
	}
	return nil
}

// RegisteredPublicKeys returns every registered public key in ascending byte order.
func (s *Store) RegisteredPublicKeys(ctx context.Context) ([][fieldparams.BLSPubkeyLength]byte, error) {
	_, span := trace.StartSpan(ctx, "Validator.RegisteredPublicKeys")
	defer span.End()
	var pubKeys [][fieldparams.BLSPubkeyLength]byte
	err := s.view(func(tx *bolt.Tx) error {
		return tx.Bucket(pubKeysBucket).ForEach(func(k, _ []byte) error {
			if len(k) != fieldparams.BLSPubkeyLength {
				return nil
			}
			pubKeys = append(pubKeys, bytesutil.ToBytes48(k))
			return nil
		})
	})
	return pubKeys, err
}

// isRegistered answers from the registered keys cache and falls back to a read
// transaction. Only positive answers are cached as keys are never unregistered.
func (s *Store) isRegistered(pubKey [fieldparams.BLSPubkeyLength]byte) (bool, error) {
	if s.registeredKeys.Contains(pubKey) {
		return true, nil
	}
	var registered bool
	if err := s.view(func(tx *bolt.Tx) error {
		registered = tx.Bucket(pubKeysBucket).Bucket(pubKey[:]) != nil
		return nil
	}); err != nil {
		return false, err
	}
	if registered {
		s.registeredKeys.Add(pubKey, struct{}{})
	}
	return registered, nil
}

func createPubKeyBuckets(bucket *bolt.Bucket, pubKey [fieldparams.BLSPubkeyLength]byte) (*bolt.Bucket, error) {
	pkBucket, err := bucket.CreateBucketIfNotExists(pubKey[:])
	if err != nil {
		return nil, err
	}
	for _, name := range [][]byte{proposalHistoryBucket, attestationHistoryBucket, lowerBoundsBucket} {
		if _, err := pkBucket.CreateBucketIfNotExists(name); err != nil {
			return nil, err
		}
	}
	return pkBucket, nil
}

// pubKeyBucket returns the history bucket of a registered key.
func pubKeyBucket(tx *bolt.Tx, pubKey [fieldparams.BLSPubkeyLength]byte) (*bolt.Bucket, error) {
	pkBucket := tx.Bucket(pubKeysBucket).Bucket(pubKey[:])
	if pkBucket == nil {
		return nil, errors.Wrapf(common.ErrKeyNotRegistered, "public key %#x", bytesutil.Trunc(pubKey[:]))
	}
	return pkBucket, nil
}
