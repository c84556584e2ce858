// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"tasklist/internal/kv"
)

// FakeStore is an in-memory kv.Store with error injection for testing.
type FakeStore struct {
	mu      sync.RWMutex
	entries map[string][]byte

	// Error injection for testing
	GetErr   error
	SetErr   error
	CloseErr error

	// Call counters
	Gets   int
	Sets   int
	Closed int
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{entries: make(map[string][]byte)}
}

// Put stores a raw value without counting it as a Set.
func (f *FakeStore) Put(key string, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = []byte(value)
}

// Value returns the raw value for key, or "" if absent.
func (f *FakeStore) Value(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.entries[key]
	return string(v), ok
}

// Get implements kv.Store.
func (f *FakeStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Gets++
	if f.GetErr != nil {
		return nil, false, f.GetErr
	}
	v, ok := f.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set implements kv.Store.
func (f *FakeStore) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sets++
	if f.SetErr != nil {
		return f.SetErr
	}
	f.entries[key] = append([]byte(nil), value...)
	return nil
}

// Close implements kv.Store.
func (f *FakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed++
	return f.CloseErr
}

var _ kv.Store = (*FakeStore)(nil)
