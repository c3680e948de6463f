// Package badger implements a Provider on an embedded BadgerDB instance.
// Slots are stored under the "slot/" key prefix.
package badger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// Compile-time interface check.
var _ types.Provider = (*Provider)(nil)

// DirName is the BadgerDB directory created inside the data directory.
const DirName = "badger"

const keyPrefix = "slot/"

// Config holds configuration for the BadgerDB instance.
type Config struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in RAM. Used by tests.
	InMemory bool

	// SyncWrites fsyncs every commit. Slot writes must be durable when Write
	// returns, so DefaultConfig enables it.
	SyncWrites bool

	// Logger receives BadgerDB's internal logs. Nil disables them.
	Logger *slog.Logger
}

// DefaultConfig returns a durable on-disk configuration rooted at path.
func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

// InMemoryConfig returns a configuration for tests.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Provider stores slots in BadgerDB.
type Provider struct {
	mu sync.RWMutex
	db *badger.DB
}

// Open opens the database described by cfg.
func Open(cfg Config) (*Provider, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Provider{db: db}, nil
}

// Read returns a copy of the slot value, or ErrSlotAbsent.
func (p *Provider) Read(key string) ([]byte, error) {
	if key == "" {
		return nil, types.ErrInvalidKey
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.db == nil {
		return nil, types.ErrProviderClosed
	}
	var value []byte
	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, types.ErrSlotAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w", key, err)
	}
	return value, nil
}

// Write sets the slot value in a single transaction.
func (p *Provider) Write(key string, data []byte) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return types.ErrProviderClosed
	}
	err := p.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+key), append([]byte{}, data...))
	})
	if err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}
	return nil
}

// Close closes the database. Idempotent.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}
