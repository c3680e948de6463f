// Package filestore implements a Provider that keeps each slot in its own
// file under a data directory. Writes are atomic: temp file, fsync, rename.
package filestore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// Compile-time interface check.
var _ types.Provider = (*Provider)(nil)

// slotExt is appended to the slot key to form the file name.
const slotExt = ".json"

// Provider stores slots as <dir>/<key>.json.
type Provider struct {
	mu     sync.RWMutex
	dir    string
	closed bool
}

// Open creates dir if needed and returns a Provider rooted there.
func Open(dir string) (*Provider, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}
	return &Provider{dir: dir}, nil
}

// Path returns the file that backs key.
func (p *Provider) Path(key string) string {
	return filepath.Join(p.dir, key+slotExt)
}

// Read returns the slot file contents, or ErrSlotAbsent when the file does
// not exist.
func (p *Provider) Read(key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, types.ErrProviderClosed
	}
	data, err := os.ReadFile(p.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, types.ErrSlotAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w", key, err)
	}
	return data, nil
}

// Write replaces the slot file atomically.
func (p *Provider) Write(key string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return types.ErrProviderClosed
	}
	return writeAtomic(p.Path(key), data)
}

// Close marks the provider closed. Idempotent.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// checkKey rejects keys that are empty or would escape the data directory.
func checkKey(key string) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q is not a plain file name", types.ErrInvalidKey, key)
	}
	return nil
}

// writeAtomic writes data to path using the temp-file, fsync, rename
// pattern so readers never observe a partial slot.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".slot-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing slot: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
