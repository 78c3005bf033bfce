package kv

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-slashing-protection/config/params"
	"github.com/prysmaticlabs/prysm-slashing-protection/io/file"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

const backupsDirectoryName = "backups"

// Backup copies every bucket of the database into a new database file and returns
// its path. Without outputDir the copy is written under the database directory,
// for example $DATADIR/backups/validatordb_1029019.backup.
func (s *Store) Backup(ctx context.Context, outputDir string, permissionOverride bool) (string, error) {
	_, span := trace.StartSpan(ctx, "Validator.Backup")
	defer span.End()

	var backupsDir string
	var err error
	if outputDir != "" {
		backupsDir, err = file.ExpandPath(outputDir)
		if err != nil {
			return "", err
		}
	} else {
		backupsDir = filepath.Join(s.databasePath, backupsDirectoryName)
	}
	if err := file.HandleBackupDir(backupsDir, permissionOverride); err != nil {
		return "", err
	}
	backupPath := filepath.Join(backupsDir, fmt.Sprintf("validatordb_%d.backup", time.Now().UnixNano()))

	size, err := s.Size()
	if err != nil {
		return "", err
	}
	log.WithFields(map[string]interface{}{
		"backup": backupPath,
		"size":   humanize.Bytes(uint64(size)),
	}).Info("Writing backup database")

	copyDB, err := bolt.Open(
		backupPath,
		params.ValidatorIoConfig().ReadWritePermissions,
		&bolt.Options{Timeout: params.ValidatorIoConfig().BoltTimeout},
	)
	if err != nil {
		return "", errors.Wrap(err, "could not open backup database")
	}
	defer func() {
		if err := copyDB.Close(); err != nil {
			log.WithError(err).Error("Failed to close backup database")
		}
	}()

	err = s.view(func(tx *bolt.Tx) error {
		return copyDB.Update(func(tx2 *bolt.Tx) error {
			return tx.ForEach(func(name []byte, b *bolt.Bucket) error {
				log.Debugf("Copying bucket %s with %d keys", name, b.Stats().KeyN)
				b2, err := tx2.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return b.ForEach(copyNestedBuckets(b, b2))
			})
		})
	})
	if err != nil {
		return "", errors.Wrap(err, "could not copy database")
	}
	return backupPath, nil
}

// copyNestedBuckets walks a bucket and recreates its nested buckets in the destination.
func copyNestedBuckets(srcBucket, dstBucket *bolt.Bucket) func(k, v []byte) error {
	return func(k, v []byte) error {
		if bkt := srcBucket.Bucket(k); bkt != nil {
			b2, err := dstBucket.CreateBucketIfNotExists(k)
			if err != nil {
				return err
			}
			return bkt.ForEach(copyNestedBuckets(bkt, b2))
		}
		return dstBucket.Put(k, v)
	}
}
