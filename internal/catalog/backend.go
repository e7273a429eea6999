package catalog

import (
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

const (
	bucketName = "storefront"

	// StoreKey versions the persisted catalog document. Bumping it
	// abandons old documents and reseeds on next access.
	StoreKey = "products_store_v1"
)

// Backend persists the whole catalog as a single JSON document under a
// fixed key. There are no delta writes: every mutation rewrites the
// document, last writer wins.
type Backend interface {
	// Load returns the raw document, ok=false when the key is absent.
	Load() ([]byte, bool, error)
	// Save replaces the document.
	Save(raw []byte) error
	// Reset removes the document so the next access reseeds.
	Reset() error
}

// BoltBackend stores the catalog document in a bbolt bucket.
type BoltBackend struct {
	db  *bolt.DB
	key []byte
}

func NewBoltBackend(db *bolt.DB) (*BoltBackend, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "catalog: create bucket")
	}
	return &BoltBackend{db: db, key: []byte(StoreKey)}, nil
}

func (b *BoltBackend) Load() ([]byte, bool, error) {
	var raw []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		val := tx.Bucket([]byte(bucketName)).Get(b.key)
		if val != nil {
			raw = append([]byte(nil), val...)
		}
		return nil
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "catalog: load")
	}
	return raw, raw != nil, nil
}

func (b *BoltBackend) Save(raw []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put(b.key, raw)
	})
	return errors.Wrap(err, "catalog: save")
}

func (b *BoltBackend) Reset() error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete(b.key)
	})
	return errors.Wrap(err, "catalog: reset")
}

// MemoryBackend keeps the document in memory. Used by tests and as the
// degraded mode when persistent storage is unavailable.
type MemoryBackend struct {
	raw []byte

	// Failing simulates an unavailable storage medium.
	Failing bool
}

func NewMemoryBackend() *MemoryBackend { return &MemoryBackend{} }

func (m *MemoryBackend) Load() ([]byte, bool, error) {
	if m.Failing {
		return nil, false, errors.New("catalog: storage unavailable")
	}
	if m.raw == nil {
		return nil, false, nil
	}
	return append([]byte(nil), m.raw...), true, nil
}

func (m *MemoryBackend) Save(raw []byte) error {
	if m.Failing {
		return errors.New("catalog: storage unavailable")
	}
	m.raw = append([]byte(nil), raw...)
	return nil
}

func (m *MemoryBackend) Reset() error {
	m.raw = nil
	return nil
}
