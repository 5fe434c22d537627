package repositories

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/agenda/internal/models"
	"github.com/desertthunder/agenda/internal/shared"
)

var _ models.AddressStore = (*AddressRepository)(nil)

// AddressRepository implements [models.AddressStore] over a single [Slot].
type AddressRepository struct {
	slot   Slot
	logger *log.Logger
}

// NewAddressRepository creates a new [AddressRepository] backed by slot.
//
// The logger defaults to [shared.NewLogger] on stderr.
func NewAddressRepository(slot Slot, logger *log.Logger) *AddressRepository {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &AddressRepository{slot: slot, logger: logger}
}

// List returns the stored addresses in insertion order.
func (r *AddressRepository) List() ([]models.Address, error) {
	data, err := r.slot.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}
	return r.decode(data), nil
}

// Save replaces the address with the same ID in place, or appends it.
func (r *AddressRepository) Save(address models.Address) error {
	if err := address.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	raw, err := json.Marshal(address)
	if err != nil {
		return fmt.Errorf("failed to encode address: %w", err)
	}

	return r.mutate(func(addresses []models.Address, records []json.RawMessage) ([]json.RawMessage, bool) {
		if i := indexOf(addresses, address.ID); i >= 0 {
			records[i] = raw
		} else {
			records = append(records, raw)
		}
		return records, true
	})
}

// DeleteByID removes the address with the given ID. Unknown IDs leave the slot untouched.
func (r *AddressRepository) DeleteByID(id string) error {
	return r.mutate(func(addresses []models.Address, records []json.RawMessage) ([]json.RawMessage, bool) {
		i := indexOf(addresses, id)
		if i < 0 {
			return records, false
		}
		return slices.Delete(records, i, i+1), true
	})
}

// UpdateDisplayName sets DisplayName on the address with the given ID. Unknown IDs leave the slot untouched.
//
// Only the displayName key of the target record is rewritten; keys this package does not model survive.
func (r *AddressRepository) UpdateDisplayName(id, displayName string) error {
	name, err := json.Marshal(displayName)
	if err != nil {
		return fmt.Errorf("failed to encode display name: %w", err)
	}

	var encodeErr error
	err = r.mutate(func(addresses []models.Address, records []json.RawMessage) ([]json.RawMessage, bool) {
		i := indexOf(addresses, id)
		if i < 0 {
			return records, false
		}

		fields := map[string]json.RawMessage{}
		if err := json.Unmarshal(records[i], &fields); err != nil || fields == nil {
			fields = map[string]json.RawMessage{}
		}
		fields["displayName"] = name

		raw, err := json.Marshal(fields)
		if err != nil {
			encodeErr = err
			return records, false
		}
		records[i] = raw
		return records, true
	})
	if err != nil {
		return err
	}
	if encodeErr != nil {
		return fmt.Errorf("%w: failed to encode address: %v", shared.ErrStorage, encodeErr)
	}
	return nil
}

// mutate applies fn to the stored records and writes them back in the same slot update.
//
// fn receives the typed addresses for lookups and the raw records to edit. Records fn leaves alone
// are written back byte for byte.
func (r *AddressRepository) mutate(fn func([]models.Address, []json.RawMessage) ([]json.RawMessage, bool)) error {
	err := r.slot.Update(func(current []byte) ([]byte, error) {
		addresses, records := r.decodeRecords(current)
		next, changed := fn(addresses, records)
		if !changed {
			return nil, nil
		}
		return encodeRecords(next), nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}
	return nil
}

// decode parses a slot payload. Absent or malformed payloads are an empty address book.
func (r *AddressRepository) decode(data []byte) []models.Address {
	addresses, _ := r.decodeRecords(data)
	return addresses
}

// decodeRecords parses a slot payload into typed addresses and their raw JSON, index for index.
func (r *AddressRepository) decodeRecords(data []byte) ([]models.Address, []json.RawMessage) {
	if len(data) == 0 {
		return []models.Address{}, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		r.logger.Warn("discarding unreadable address book", "error", err)
		return []models.Address{}, nil
	}

	addresses := make([]models.Address, len(records))
	for i, raw := range records {
		if err := json.Unmarshal(raw, &addresses[i]); err != nil {
			r.logger.Warn("discarding unreadable address book", "error", err, "index", i)
			return []models.Address{}, nil
		}
	}
	return addresses, records
}

// encodeRecords joins raw records into a JSON array without re-encoding them.
func encodeRecords(records []json.RawMessage) []byte {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, raw := range records {
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(raw)
	}
	b.WriteByte(']')
	return b.Bytes()
}

func indexOf(addresses []models.Address, id string) int {
	return slices.IndexFunc(addresses, func(a models.Address) bool { return a.ID == id })
}
