// Package todos is the public entry point for the todos store. Open picks
// the backing provider named in the Config and returns a Handle whose Store
// hydrates lazily on first use.
//
// Example:
//
//	h, err := todos.Open(types.Config{
//	    Backend: types.BackendFile,
//	    DataDir: ".todos-db",
//	})
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//	list := h.Store.GetAll()
package todos

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/mesh-intelligence/todos/internal/badger"
	"github.com/mesh-intelligence/todos/internal/filestore"
	"github.com/mesh-intelligence/todos/internal/memstore"
	"github.com/mesh-intelligence/todos/internal/sqlite"
	"github.com/mesh-intelligence/todos/internal/store"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// Version is the module release version.
const Version = "0.1.0"

// Handle ties a Store to the provider it persists through.
type Handle struct {
	Store    *store.Store
	Provider types.Provider
	Config   types.Config
}

// Option configures Open.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger routes store and provider logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Open validates cfg, opens the backing provider, and returns a Handle.
// The store is not hydrated until its first operation.
func Open(cfg types.Config, opts ...Option) (*Handle, error) {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := OpenProvider(cfg, o.logger)
	if err != nil {
		return nil, fmt.Errorf("open %s provider: %w", cfg.Backend, err)
	}

	logger := o.logger.With("backend", cfg.Backend)
	return &Handle{
		Store:    store.New(provider, cfg.GetSlotKey(), store.WithLogger(logger)),
		Provider: provider,
		Config:   cfg,
	}, nil
}

// Close releases the provider. Idempotent.
func (h *Handle) Close() error {
	return h.Provider.Close()
}

// OpenProvider opens the provider for cfg.Backend rooted at cfg.DataDir.
func OpenProvider(cfg types.Config, logger *slog.Logger) (types.Provider, error) {
	dataDir := cfg.GetDataDir()
	switch cfg.Backend {
	case types.BackendFile:
		return filestore.Open(dataDir)
	case types.BackendSQLite:
		return sqlite.Open(dataDir)
	case types.BackendBadger:
		bc := badger.DefaultConfig(filepath.Join(dataDir, badger.DirName))
		bc.Logger = logger
		return badger.Open(bc)
	case types.BackendMemory:
		return memstore.New(), nil
	default:
		return nil, types.ErrBackendUnknown
	}
}
