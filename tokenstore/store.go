// Package tokenstore persists the marketplace auth token between runs.
// It is the Go analog of the mobile app's device key-value storage: a single
// bearer token string, read on every authenticated request and written or
// cleared on login/logout.
package tokenstore

import (
	"errors"
	"sync"
)

// ErrNoToken is returned when no token has been stored.
var ErrNoToken = errors.New("tokenstore: no token stored")

// Store holds the current auth token.
type Store interface {
	// Token returns the stored token, or ErrNoToken when absent.
	Token() (string, error)
	// SetToken replaces the stored token.
	SetToken(token string) error
	// Clear removes the stored token.
	Clear() error
}

// MemoryStore is an in-process Store, used in tests and short-lived tools.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWithToken creates a store pre-seeded with a token.
func NewMemoryStoreWithToken(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

// Token returns the stored token.
func (m *MemoryStore) Token() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == "" {
		return "", ErrNoToken
	}
	return m.token, nil
}

// SetToken replaces the stored token.
func (m *MemoryStore) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// Clear removes the stored token.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
