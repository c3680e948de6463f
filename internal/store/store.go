// Package store owns the in-memory todos mapping. It hydrates the mapping
// from a backing provider on first use, implements the five operations
// (GetAll, GetOne, Upsert, Delete, ClearAll), and writes the full mapping
// back to the provider after every mutation.
//
// A Store is in one of two states. It starts Uninitialized and moves to
// Hydrated exactly once, on the first call to any operation. Hydration reads
// the slot; an absent slot, a read failure, or bytes that fail to decode all
// leave the store holding the seed dataset. There is no way back to
// Uninitialized.
//
// Mutations are write-through. When the write fails the operation returns
// its normal result together with an error wrapping types.ErrPersistence;
// the in-memory change is kept, so the caller should read that error as
// "applied for this run, may not survive a restart".
package store

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/mesh-intelligence/todos/internal/codec"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// Store is safe for concurrent use; a mutex serializes hydration and every
// read-modify-write sequence.
type Store struct {
	mu       sync.Mutex
	provider types.Provider
	key      string
	logger   *slog.Logger
	seed     func() map[int64]types.Todo
	validate *validator.Validate

	hydrated bool
	todos    map[int64]types.Todo
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for hydration and persistence reports.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeed replaces the fallback dataset used when the slot is absent or
// undecodable.
func WithSeed(seed func() map[int64]types.Todo) Option {
	return func(s *Store) {
		if seed != nil {
			s.seed = seed
		}
	}
}

// New creates an Uninitialized store over the given provider slot. Nothing
// is read until the first operation.
func New(provider types.Provider, key string, opts ...Option) *Store {
	s := &Store{
		provider: provider,
		key:      key,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		seed:     SeedTodos,
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrated reports whether the store has loaded its mapping.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// GetAll returns every todo in ascending id order. It never fails.
func (s *Store) GetAll() []types.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedTodos(s.records())
}

// GetOne returns the todo with the requested id.
// Returns ErrInvalidArgument if the id is missing or negative and
// ErrNotFound if no todo has that id.
func (s *Store) GetOne(req types.LookupRequest) (types.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos := s.records()
	if err := s.checkRequest(req); err != nil {
		return types.Todo{}, err
	}

	t, ok := todos[*req.ID]
	if !ok {
		return types.Todo{}, fmt.Errorf("%w: id %d", types.ErrNotFound, *req.ID)
	}
	return t, nil
}

// Upsert inserts or wholesale replaces a todo. When req.ID is nil a new id
// is generated. Returns the effective id and the full sorted list.
// Returns ErrInvalidArgument, leaving the store untouched, when name, dueAt,
// or done is missing or malformed. A persistence failure returns the result
// together with an error wrapping ErrPersistence.
func (s *Store) Upsert(req types.UpsertRequest) (types.UpsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos := s.records()
	if err := s.checkUpsert(req); err != nil {
		return types.UpsertResult{}, err
	}

	var id int64
	if req.ID != nil {
		id = *req.ID
	} else {
		id = nextID(todos)
	}
	todos[id] = types.Todo{
		ID:    id,
		Name:  *req.Name,
		DueAt: *req.DueAt,
		Done:  *req.Done,
	}

	result := types.UpsertResult{ID: id, Todos: sortedTodos(todos)}
	if err := s.persist("upsert"); err != nil {
		return result, err
	}
	return result, nil
}

// Delete removes the todo with the requested id and returns the remaining
// sorted list. Returns ErrInvalidArgument if the id is missing and
// ErrNotFound if it is absent; neither changes the store or the slot.
func (s *Store) Delete(req types.LookupRequest) ([]types.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos := s.records()
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}
	if _, ok := todos[*req.ID]; !ok {
		return nil, fmt.Errorf("%w: id %d", types.ErrNotFound, *req.ID)
	}
	delete(todos, *req.ID)

	remaining := sortedTodos(todos)
	if err := s.persist("delete"); err != nil {
		return remaining, err
	}
	return remaining, nil
}

// ClearAll removes every todo and returns an empty list. Only persistence
// can fail.
func (s *Store) ClearAll() ([]types.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.records())

	if err := s.persist("clear"); err != nil {
		return []types.Todo{}, err
	}
	return []types.Todo{}, nil
}

// records returns the mapping, hydrating it on first use.
// The caller must hold s.mu.
func (s *Store) records() map[int64]types.Todo {
	if !s.hydrated {
		s.todos = s.load()
		s.hydrated = true
	}
	return s.todos
}

// load reads and decodes the slot, falling back to the seed dataset.
// Failures here are logged, never returned.
func (s *Store) load() map[int64]types.Todo {
	data, err := s.provider.Read(s.key)
	switch {
	case errors.Is(err, types.ErrSlotAbsent):
		s.logger.Info("no stored todos, starting from seed data", "slot", s.key)
		return s.seed()
	case err != nil:
		s.logger.Error("read stored todos failed, starting from seed data", "slot", s.key, "error", err)
		return s.seed()
	}

	todos, err := codec.DecodeAll(data)
	if err != nil {
		s.logger.Warn("decode stored todos failed, starting from seed data", "slot", s.key, "bytes", len(data), "error", err)
		return s.seed()
	}
	s.logger.Debug("hydrated todos", "slot", s.key, "count", len(todos))
	return todos
}

// persist writes the full mapping to the slot. The caller must hold s.mu.
func (s *Store) persist(op string) error {
	data, err := codec.EncodeAll(s.todos)
	if err != nil {
		s.logger.Error("encode todos failed", "op", op, "error", err)
		return fmt.Errorf("%w: encode: %w", types.ErrPersistence, err)
	}
	if err := s.provider.Write(s.key, data); err != nil {
		s.logger.Error("write todos failed", "op", op, "slot", s.key, "error", err)
		return fmt.Errorf("%w: write slot %q: %w", types.ErrPersistence, s.key, err)
	}
	s.logger.Debug("persisted todos", "op", op, "slot", s.key, "count", len(s.todos))
	return nil
}

// sortedTodos returns the records in ascending id order.
func sortedTodos(todos map[int64]types.Todo) []types.Todo {
	out := make([]types.Todo, 0, len(todos))
	for _, t := range todos {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b types.Todo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
