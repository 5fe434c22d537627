package repositories

import "sync"

// MemorySlot keeps its value in memory for the lifetime of the process.
type MemorySlot struct {
	mu    sync.Mutex
	value []byte
}

// NewMemorySlot creates a [MemorySlot], optionally seeded with an initial value.
func NewMemorySlot(initial []byte) *MemorySlot {
	s := &MemorySlot{}
	if initial != nil {
		s.value = append([]byte{}, initial...)
	}
	return s
}

func (m *MemorySlot) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.value == nil {
		return nil, nil
	}
	return append([]byte{}, m.value...), nil
}

func (m *MemorySlot) Update(fn func(current []byte) ([]byte, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var current []byte
	if m.value != nil {
		current = append([]byte{}, m.value...)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next != nil {
		m.value = append([]byte{}, next...)
	}
	return nil
}

func (m *MemorySlot) Close() error { return nil }
