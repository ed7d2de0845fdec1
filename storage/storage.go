// Package storage provides the key-value persistence collaborator the UI
// layer injects for settings and history, mirroring browser local storage.
package storage

import "sync"

// KV is a durable string key-value store. Implementations must be safe for
// use from a single caller context; cross-process coordination is out of
// scope.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)

	// Set stores a value, replacing any previous one.
	Set(key, value string) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key string) error
}

// Mem is an in-memory KV store for tests and ephemeral use.
type Mem struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMem creates an empty in-memory store.
func NewMem() *Mem {
	return &Mem{data: make(map[string]string)}
}

func (m *Mem) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Mem) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Mem) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
