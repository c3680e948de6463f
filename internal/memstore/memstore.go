// Package memstore provides an in-process Provider. Slots live only as long
// as the Provider value; it backs the "memory" backend and tests.
package memstore

import (
	"sync"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// Compile-time interface check.
var _ types.Provider = (*Provider)(nil)

// Provider keeps slots in a map. Read and Write copy their byte slices so
// callers cannot alias stored data.
type Provider struct {
	mu     sync.RWMutex
	closed bool
	slots  map[string][]byte
}

// New returns an empty Provider.
func New() *Provider {
	return &Provider{slots: make(map[string][]byte)}
}

// Read returns a copy of the slot contents.
func (p *Provider) Read(key string) ([]byte, error) {
	if key == "" {
		return nil, types.ErrInvalidKey
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, types.ErrProviderClosed
	}
	data, ok := p.slots[key]
	if !ok {
		return nil, types.ErrSlotAbsent
	}
	return append([]byte(nil), data...), nil
}

// Write stores a copy of data under key.
func (p *Provider) Write(key string, data []byte) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return types.ErrProviderClosed
	}
	p.slots[key] = append([]byte{}, data...)
	return nil
}

// Close marks the provider closed. Idempotent.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
