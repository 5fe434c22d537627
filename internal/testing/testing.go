// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"slices"
	"sync"
	"testing"

	"github.com/desertthunder/agenda/internal/models"
)

// StubLookup is a test double for services.Lookup returning canned values.
//
// Locations are keyed by CEP; unknown codes resolve to a not-found location.
type StubLookup struct {
	mu        sync.Mutex
	Locations map[string]models.Location
	Err       error
	Calls     []string
}

func NewStubLookup(locations map[string]models.Location) *StubLookup {
	if locations == nil {
		locations = map[string]models.Location{}
	}
	return &StubLookup{Locations: locations}
}

func (s *StubLookup) Lookup(ctx context.Context, cep string) (*models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, cep)
	if s.Err != nil {
		return nil, s.Err
	}
	if loc, ok := s.Locations[cep]; ok {
		return &loc, nil
	}
	return &models.Location{Erro: true}, nil
}

func (s *StubLookup) Name() string { return "stub" }

// MemoryStore is an in-memory [models.AddressStore] with injectable failures and call counting.
type MemoryStore struct {
	mu        sync.Mutex
	addresses []models.Address
	ListErr   error
	WriteErr  error
	Writes    int
}

func NewMemoryStore(addresses ...models.Address) *MemoryStore {
	return &MemoryStore{addresses: slices.Clone(addresses)}
}

func (m *MemoryStore) List() ([]models.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := slices.Clone(m.addresses)
	if out == nil {
		out = []models.Address{}
	}
	return out, nil
}

func (m *MemoryStore) Save(address models.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Writes++
	if i := m.index(address.ID); i >= 0 {
		m.addresses[i] = address
		return nil
	}
	m.addresses = append(m.addresses, address)
	return nil
}

func (m *MemoryStore) DeleteByID(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Writes++
	if i := m.index(id); i >= 0 {
		m.addresses = slices.Delete(m.addresses, i, i+1)
	}
	return nil
}

func (m *MemoryStore) UpdateDisplayName(id, displayName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Writes++
	if i := m.index(id); i >= 0 {
		m.addresses[i].DisplayName = displayName
	}
	return nil
}

func (m *MemoryStore) index(id string) int {
	return slices.IndexFunc(m.addresses, func(a models.Address) bool { return a.ID == id })
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
