package sizing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/crytic/solinspect/utils"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

// snapshotBucket is the bucket holding one record per contract, keyed by unique name.
var snapshotBucket = []byte("sizes")

// BoltSnapshotStore stores results in a bbolt database, one JSON encoded record per contract.
type BoltSnapshotStore struct {
	// Path is the path of the database file.
	Path string
}

// NewBoltSnapshotStore returns a BoltSnapshotStore for the given path.
func NewBoltSnapshotStore(path string) *BoltSnapshotStore {
	return &BoltSnapshotStore{Path: path}
}

// open opens the database. If readOnly is set, the database must already exist.
func (s *BoltSnapshotStore) open(readOnly bool) (*bbolt.DB, error) {
	db, err := bbolt.Open(s.Path, 0600, &bbolt.Options{Timeout: time.Second, ReadOnly: readOnly})
	if err != nil {
		return nil, errors.Wrapf(err, "could not open size snapshot %s", s.Path)
	}
	return db, nil
}

// Load reads the stored results. A missing database yields an empty mapping.
func (s *BoltSnapshotStore) Load() (StoredCodeMappings, error) {
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return StoredCodeMappings{}, nil
	}
	db, err := s.open(true)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	stored := make(StoredCodeMappings)
	err = db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(snapshotBucket)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var m StoredCodeMapping
			if err := json.Unmarshal(v, &m); err != nil {
				return errors.Wrapf(err, "could not parse stored sizes of %s", k)
			}
			stored[string(k)] = m
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Save replaces the stored results with the given ones. The bucket is dropped and rebuilt in a single transaction.
func (s *BoltSnapshotStore) Save(mappings []*ContractCodeMapping) error {
	if err := utils.MakeDirectory(filepath.Dir(s.Path)); err != nil {
		return err
	}
	db, err := s.open(false)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(snapshotBucket) != nil {
			if err := tx.DeleteBucket(snapshotBucket); err != nil {
				return errors.WithStack(err)
			}
		}
		bucket, err := tx.CreateBucket(snapshotBucket)
		if err != nil {
			return errors.WithStack(err)
		}
		for uniqueName, m := range NewStoredCodeMappings(mappings) {
			v, err := json.Marshal(m)
			if err != nil {
				return errors.WithStack(err)
			}
			if err = bucket.Put([]byte(uniqueName), v); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	})
}
