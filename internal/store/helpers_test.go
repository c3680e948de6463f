package store

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todos/internal/codec"
	"github.com/mesh-intelligence/todos/internal/memstore"
	"github.com/mesh-intelligence/todos/pkg/types"
)

const testSlot = "ToDoItems"

var errDiskFull = errors.New("disk full")

// faultyProvider wraps a memstore and injects read and write failures.
type faultyProvider struct {
	*memstore.Provider
	readErr  error
	writeErr error
	reads    int
	writes   int
}

func (p *faultyProvider) Read(key string) ([]byte, error) {
	p.reads++
	if p.readErr != nil {
		return nil, p.readErr
	}
	return p.Provider.Read(key)
}

func (p *faultyProvider) Write(key string, data []byte) error {
	p.writes++
	if p.writeErr != nil {
		return p.writeErr
	}
	return p.Provider.Write(key, data)
}

func newFaultyProvider() *faultyProvider {
	return &faultyProvider{Provider: memstore.New()}
}

// setupStore returns a store over an empty slot and the provider behind it.
func setupStore(t *testing.T, opts ...Option) (*Store, *faultyProvider) {
	t.Helper()
	p := newFaultyProvider()
	t.Cleanup(func() { p.Close() })
	return New(p, testSlot, opts...), p
}

// storedTodos decodes the slot contents.
func storedTodos(t *testing.T, p types.Provider) map[int64]types.Todo {
	t.Helper()
	data, err := p.Read(testSlot)
	require.NoError(t, err)
	todos, err := codec.DecodeAll(data)
	require.NoError(t, err)
	return todos
}

// writeSlot encodes todos into the slot.
func writeSlot(t *testing.T, p types.Provider, todos map[int64]types.Todo) {
	t.Helper()
	data, err := codec.EncodeAll(todos)
	require.NoError(t, err)
	require.NoError(t, p.Write(testSlot, data))
}

// bufferLogger returns a logger that writes text records into buf.
func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func ids(todos []types.Todo) []int64 {
	out := make([]int64, len(todos))
	for i, t := range todos {
		out[i] = t.ID
	}
	return out
}

func upsertReq(name string, due float64, done bool) types.UpsertRequest {
	return types.UpsertRequest{
		Name:  types.Ptr(name),
		DueAt: types.Ptr(due),
		Done:  types.Ptr(done),
	}
}

func lookup(id int64) types.LookupRequest {
	return types.LookupRequest{ID: types.Ptr(id)}
}
