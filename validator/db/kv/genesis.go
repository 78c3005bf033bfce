package kv

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-slashing-protection/config/params"
	"github.com/prysmaticlabs/prysm-slashing-protection/encoding/bytesutil"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/common"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// SaveGenesisValidatorsRoot saves the genesis validators root to db.
// An existing root is never overwritten with a different one.
func (s *Store) SaveGenesisValidatorsRoot(ctx context.Context, genValRoot []byte) error {
	_, span := trace.StartSpan(ctx, "Validator.SaveGenesisValidatorsRoot")
	defer span.End()
	return s.update(func(tx *bolt.Tx) error {
		return putGenesisValidatorsRoot(tx.Bucket(genesisInfoBucket), genValRoot)
	})
}

// GenesisValidatorsRoot retrieves the genesis validators root from db.
// A nil root means none was saved yet.
func (s *Store) GenesisValidatorsRoot(ctx context.Context) ([]byte, error) {
	_, span := trace.StartSpan(ctx, "Validator.GenesisValidatorsRoot")
	defer span.End()
	var genValRoot []byte
	err := s.view(func(tx *bolt.Tx) error {
		enc := tx.Bucket(genesisInfoBucket).Get(genesisValidatorsRootKey)
		if len(enc) == 0 {
			return nil
		}
		genValRoot = bytesutil.SafeCopyBytes(enc)
		return nil
	})
	return genValRoot, err
}

// SchemaVersion returns the schema version written when the database was created.
func (s *Store) SchemaVersion(ctx context.Context) (uint64, error) {
	_, span := trace.StartSpan(ctx, "Validator.SchemaVersion")
	defer span.End()
	var version uint64
	err := s.view(func(tx *bolt.Tx) error {
		enc := tx.Bucket(genesisInfoBucket).Get(schemaVersionKey)
		if len(enc) != 8 {
			return errors.New("schema version is missing or malformed")
		}
		version = bytesutil.BytesToUint64BigEndian(enc)
		return nil
	})
	return version, err
}

func putGenesisValidatorsRoot(bkt *bolt.Bucket, genValRoot []byte) error {
	enc := bkt.Get(genesisValidatorsRootKey)
	if len(enc) != 0 {
		if !bytes.Equal(enc, genValRoot) {
			return errors.Wrap(
				common.ErrGenesisValidatorsRootMismatch,
				fmt.Sprintf("cannot overwrite existing genesis validators root %#x with %#x", enc, genValRoot),
			)
		}
		return nil
	}
	return bkt.Put(genesisValidatorsRootKey, genValRoot)
}

func ensureSchemaVersion(bkt *bolt.Bucket) error {
	enc := bkt.Get(schemaVersionKey)
	if len(enc) == 0 {
		return bkt.Put(schemaVersionKey, bytesutil.Uint64ToBytesBigEndian(params.ValidatorDBSchemaVersion))
	}
	if version := bytesutil.BytesToUint64BigEndian(enc); version > params.ValidatorDBSchemaVersion {
		return fmt.Errorf(
			"database schema version %d is newer than the supported version %d",
			version, params.ValidatorDBSchemaVersion,
		)
	}
	return nil
}
