package types

import "errors"

// Config selects the backing provider and its parameters.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
	SlotKey string `json:"slot_key,omitempty" yaml:"slot_key,omitempty"`
}

// Supported backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// DefaultSlotKey names the slot used when Config.SlotKey is empty.
const DefaultSlotKey = "ToDoItems"

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendFile:   true,
	BackendSQLite: true,
	BackendBadger: true,
	BackendMemory: true,
}

// Backends lists the supported backend names in display order.
var Backends = []string{BackendFile, BackendSQLite, BackendBadger, BackendMemory}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// GetSlotKey returns the configured slot key, or DefaultSlotKey when unset.
func (c Config) GetSlotKey() string {
	if c.SlotKey == "" {
		return DefaultSlotKey
	}
	return c.SlotKey
}

// GetDataDir returns the configured data directory, or "." when unset.
func (c Config) GetDataDir() string {
	if c.DataDir == "" {
		return "."
	}
	return c.DataDir
}
