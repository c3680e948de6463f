// Package sqlite implements a Provider backed by an SQLite database file.
// Each slot is a row in the slots table; writes are single-statement upserts.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// Compile-time interface check.
var _ types.Provider = (*Provider)(nil)

// DBFileName is the database file created inside the data directory.
const DBFileName = "todos.db"

// Provider stores slots in SQLite.
type Provider struct {
	mu sync.RWMutex
	db *sql.DB
}

// Open creates dataDir if needed, opens (or creates) the database, and
// applies the schema.
func Open(dataDir string) (*Provider, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dataDir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DBFileName))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}

	return &Provider{db: db}, nil
}

// Read returns the slot value, or ErrSlotAbsent when no row exists.
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
	err := p.db.QueryRow(selectSlot, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrSlotAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w", key, err)
	}
	return value, nil
}

// Write inserts or replaces the slot row.
func (p *Provider) Write(key string, data []byte) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return types.ErrProviderClosed
	}
	updatedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := p.db.Exec(upsertSlot, key, data, updatedAt); err != nil {
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
