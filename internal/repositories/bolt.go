package repositories

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const boltBucketSlots = "slots" // key: slot name -> serialized value

// BoltSlot stores its value under a key in the slots bucket of a bbolt database.
type BoltSlot struct {
	storage *bbolt.DB
	key     []byte
}

// NewBoltSlot opens (or creates) the bbolt file at path and prepares the slots bucket.
func NewBoltSlot(path, key string) (*BoltSlot, error) {
	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketSlots))
		return err
	}); err != nil {
		_ = instance.Close()
		return nil, fmt.Errorf("failed to create slots bucket: %w", err)
	}

	return &BoltSlot{storage: instance, key: []byte(key)}, nil
}

// Load copies the value out of the read transaction; bbolt memory is only valid inside it.
func (b *BoltSlot) Load() ([]byte, error) {
	var out []byte

	err := b.storage.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket([]byte(boltBucketSlots)).Get(b.key); v != nil {
			out = append([]byte{}, v...)
		}
		return nil
	})

	return out, err
}

// Update runs fn inside a single bbolt read-write transaction.
func (b *BoltSlot) Update(fn func(current []byte) ([]byte, error)) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		slots := tx.Bucket([]byte(boltBucketSlots))

		var current []byte
		if v := slots.Get(b.key); v != nil {
			current = append([]byte{}, v...)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}

		return slots.Put(b.key, next)
	})
}

// Close closes the underlying bbolt database.
func (b *BoltSlot) Close() error {
	return b.storage.Close()
}
