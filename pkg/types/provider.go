package types

import "errors"

// Provider is a backing key-value store. The todos store uses a single named
// slot of opaque bytes that outlives the process.
type Provider interface {
	// Read returns the bytes stored under key.
	// Returns ErrSlotAbsent if the slot has never been written.
	Read(key string) ([]byte, error)

	// Write replaces the bytes stored under key. The write is durable when
	// Write returns nil.
	Write(key string, data []byte) error

	// Close releases provider resources. Idempotent: multiple calls succeed.
	// After Close, Read and Write return ErrProviderClosed.
	Close() error
}

// Provider errors.
var (
	ErrSlotAbsent     = errors.New("storage slot is empty")
	ErrProviderClosed = errors.New("provider is closed")
	ErrInvalidKey     = errors.New("slot key must not be empty")
)
