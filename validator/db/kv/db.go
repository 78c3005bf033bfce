package kv

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	prombbolt "github.com/prysmaticlabs/prombbolt"
	fieldparams "github.com/prysmaticlabs/prysm-slashing-protection/config/fieldparams"
	"github.com/prysmaticlabs/prysm-slashing-protection/config/params"
	"github.com/prysmaticlabs/prysm-slashing-protection/io/file"
	bolt "go.etcd.io/bbolt"
)

const (
	// ProtectionDbFileName Validator slashing protection db file name.
	ProtectionDbFileName = "validator.db"

	registeredKeysCacheSize = 4096
)

// Store defines an implementation of the validator slashing protection database
// using BoltDB as the underlying persistent kv-store.
type Store struct {
	db           *bolt.DB
	databasePath string
	collector    prometheus.Collector

	// pubKeyLocks serializes check-and-insert calls for the same public key.
	pubKeyLocks    sync.Map
	registeredKeys *lru.Cache
}

// Config represents store's config object.
type Config struct {
	PubKeys               [][fieldparams.BLSPubkeyLength]byte
	GenesisValidatorsRoot []byte
	InitialMMapSize       int
}

// NewKVStore initializes a new boltDB key-value store at the directory
// path specified, creates the kv-buckets based on the schema, and stores
// an open connection db object as a property of the Store struct.
func NewKVStore(ctx context.Context, dirPath string, config *Config) (*Store, error) {
	if config == nil {
		config = &Config{}
	}
	hasDir, err := file.HasDir(dirPath)
	if err != nil {
		return nil, err
	}
	if !hasDir {
		if err := file.MkdirAll(dirPath); err != nil {
			return nil, err
		}
	}
	datafile := filepath.Join(dirPath, ProtectionDbFileName)
	boltDB, err := bolt.Open(datafile, params.ValidatorIoConfig().ReadWritePermissions, &bolt.Options{
		Timeout:         params.ValidatorIoConfig().BoltTimeout,
		InitialMmapSize: config.InitialMMapSize,
	})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errors.New("cannot obtain database lock, database may be in use by another process")
		}
		return nil, err
	}
	registeredKeys, err := lru.New(registeredKeysCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "could not create registered keys cache")
	}

	kv := &Store{
		db:             boltDB,
		databasePath:   dirPath,
		registeredKeys: registeredKeys,
	}

	if err := kv.db.Update(func(tx *bolt.Tx) error {
		if err := createBuckets(tx, genesisInfoBucket, pubKeysBucket); err != nil {
			return err
		}
		return ensureSchemaVersion(tx.Bucket(genesisInfoBucket))
	}); err != nil {
		return nil, closeOnError(boltDB, err)
	}

	if len(config.PubKeys) > 0 {
		if err := kv.UpdatePublicKeysBuckets(config.PubKeys); err != nil {
			return nil, closeOnError(boltDB, err)
		}
	}
	if len(config.GenesisValidatorsRoot) > 0 {
		if err := kv.SaveGenesisValidatorsRoot(ctx, config.GenesisValidatorsRoot); err != nil {
			return nil, closeOnError(boltDB, err)
		}
	}

	collector := prombbolt.New("validatorDB", boltDB)
	if err := prometheus.Register(collector); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if !errors.As(err, &alreadyRegistered) {
			return nil, closeOnError(boltDB, err)
		}
		log.Debug("Validator database collector is already registered")
	} else {
		kv.collector = collector
	}
	return kv, nil
}

func closeOnError(db *bolt.DB, err error) error {
	if closeErr := db.Close(); closeErr != nil {
		log.WithError(closeErr).Error("Could not close validator database")
	}
	return err
}

// Close closes the underlying boltdb database.
func (s *Store) Close() error {
	if s.collector != nil {
		prometheus.Unregister(s.collector)
		s.collector = nil
	}
	return s.db.Close()
}

// ClearDB removes any previously stored data at the configured data directory.
func (s *Store) ClearDB() error {
	dbFile := filepath.Join(s.databasePath, ProtectionDbFileName)
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(dbFile)
}

// DatabasePath at which this database writes files.
func (s *Store) DatabasePath() string {
	return s.databasePath
}

// Size returns the db size in bytes.
func (s *Store) Size() (int64, error) {
	var size int64
	err := s.db.View(func(tx *bolt.Tx) error {
		size = tx.Size()
		return nil
	})
	return size, err
}

func (s *Store) update(fn func(*bolt.Tx) error) error {
	return s.db.Update(fn)
}

// batch may run fn more than once, fn must not have side effects outside tx.
func (s *Store) batch(fn func(*bolt.Tx) error) error {
	return s.db.Batch(fn)
}

func (s *Store) view(fn func(*bolt.Tx) error) error {
	return s.db.View(fn)
}

func createBuckets(tx *bolt.Tx, buckets ...[]byte) error {
	for _, bucket := range buckets {
		if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) lockPubKey(pubKey [fieldparams.BLSPubkeyLength]byte) func() {
	l, _ := s.pubKeyLocks.LoadOrStore(pubKey, &sync.Mutex{})
	mu := l.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// lockPubKeys acquires the locks of all given keys in ascending key order.
func (s *Store) lockPubKeys(pubKeys [][fieldparams.BLSPubkeyLength]byte) func() {
	sorted := make([][fieldparams.BLSPubkeyLength]byte, len(pubKeys))
	copy(sorted, pubKeys)
	sort.Slice(sorted, func(i, j int) bool {
		return string(sorted[i][:]) < string(sorted[j][:])
	})
	unlocks := make([]func(), 0, len(sorted))
	for i, pk := range sorted {
		if i > 0 && pk == sorted[i-1] {
			continue
		}
		unlocks = append(unlocks, s.lockPubKey(pk))
	}
	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}
