// ABOUTME: Shared helpers for storage tests.
// ABOUTME: Provides in-memory Badger stores and a map backend.
package storage

import (
	"errors"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	backend, err := OpenBadgerInMemory(nil)
	if err != nil {
		t.Fatalf("OpenBadgerInMemory failed: %v", err)
	}
	s := New(backend, nil)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// mapBackend is a trivial Backend used to inspect raw stored bytes.
type mapBackend struct {
	data     map[string][]byte
	failSets bool
}

func newMapBackend() *mapBackend {
	return &mapBackend{data: make(map[string][]byte)}
}

func (m *mapBackend) Get(key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *mapBackend) Set(key string, data []byte) error {
	if m.failSets {
		return ErrReadOnly
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *mapBackend) Close() error { return nil }

var errBoom = errors.New("boom")

type failingBackend struct{}

func (failingBackend) Get(string) ([]byte, error) { return nil, errBoom }
func (failingBackend) Set(string, []byte) error   { return errBoom }
func (failingBackend) Close() error               { return nil }
