// package repositories provides the storage slot backends and the address repository built on them.
package repositories

import (
	"fmt"

	"github.com/desertthunder/agenda/internal/shared"
)

// Slot is a single named location in durable storage holding one serialized value.
type Slot interface {
	// Load returns the stored value, or nil if the slot was never written.
	Load() ([]byte, error)

	// Update atomically reads the current value (nil if never written), passes it to fn and stores the result.
	// Returning a nil value from fn leaves the slot untouched; returning an error aborts without writing.
	Update(fn func(current []byte) ([]byte, error)) error

	// Close releases resources held by the backend.
	Close() error
}

var (
	_ Slot = (*SQLiteSlot)(nil)
	_ Slot = (*BoltSlot)(nil)
	_ Slot = (*MemorySlot)(nil)
)

// OpenSlot opens the slot selected by the storage configuration.
func OpenSlot(cfg shared.StorageConfig) (Slot, error) {
	switch cfg.Backend {
	case shared.BackendSQLite:
		db, err := shared.OpenMigratedDatabase(cfg.Path, cfg.MaxOpenConns, cfg.MaxIdleConns)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
		}
		slot := NewSQLiteSlot(db, cfg.Slot)
		slot.ownsDB = true
		return slot, nil
	case shared.BackendBolt:
		slot, err := NewBoltSlot(cfg.Path, cfg.Slot)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
		}
		return slot, nil
	case shared.BackendMemory:
		return NewMemorySlot(nil), nil
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownBackend, cfg.Backend)
	}
}
