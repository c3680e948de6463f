// Package providertest holds the behavior checks every types.Provider must
// pass. Provider packages call Run from their own tests.
package providertest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// Factory opens a fresh provider. Reopen, when non-nil, opens a second
// provider over the same durable location after the first is closed.
type Factory struct {
	Open   func(t *testing.T) types.Provider
	Reopen func(t *testing.T) types.Provider
}

// Run executes the provider contract against f.
func Run(t *testing.T, f Factory) {
	t.Helper()

	tests := []struct {
		name  string
		check func(t *testing.T, p types.Provider)
	}{
		{
			name: "read of unwritten slot returns ErrSlotAbsent",
			check: func(t *testing.T, p types.Provider) {
				_, err := p.Read("ToDoItems")
				assert.ErrorIs(t, err, types.ErrSlotAbsent)
			},
		},
		{
			name: "write then read returns the same bytes",
			check: func(t *testing.T, p types.Provider) {
				require.NoError(t, p.Write("ToDoItems", []byte(`{"1":{}}`)))
				got, err := p.Read("ToDoItems")
				require.NoError(t, err)
				assert.Equal(t, []byte(`{"1":{}}`), got)
			},
		},
		{
			name: "second write replaces the first",
			check: func(t *testing.T, p types.Provider) {
				require.NoError(t, p.Write("ToDoItems", []byte("first, and longer")))
				require.NoError(t, p.Write("ToDoItems", []byte("second")))
				got, err := p.Read("ToDoItems")
				require.NoError(t, err)
				assert.Equal(t, []byte("second"), got)
			},
		},
		{
			name: "empty value is present, not absent",
			check: func(t *testing.T, p types.Provider) {
				require.NoError(t, p.Write("ToDoItems", []byte{}))
				got, err := p.Read("ToDoItems")
				require.NoError(t, err)
				assert.Empty(t, got)
			},
		},
		{
			name: "slots are independent",
			check: func(t *testing.T, p types.Provider) {
				require.NoError(t, p.Write("a", []byte("A")))
				_, err := p.Read("b")
				assert.ErrorIs(t, err, types.ErrSlotAbsent)
			},
		},
		{
			name: "empty key rejected",
			check: func(t *testing.T, p types.Provider) {
				assert.ErrorIs(t, p.Write("", []byte("x")), types.ErrInvalidKey)
				_, err := p.Read("")
				assert.ErrorIs(t, err, types.ErrInvalidKey)
			},
		},
		{
			name: "close is idempotent and blocks further use",
			check: func(t *testing.T, p types.Provider) {
				require.NoError(t, p.Close())
				require.NoError(t, p.Close())
				_, err := p.Read("ToDoItems")
				assert.ErrorIs(t, err, types.ErrProviderClosed)
				assert.ErrorIs(t, p.Write("ToDoItems", []byte("x")), types.ErrProviderClosed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := f.Open(t)
			t.Cleanup(func() { p.Close() })
			tt.check(t, p)
		})
	}

	if f.Reopen == nil {
		return
	}
	t.Run("slot survives close and reopen", func(t *testing.T) {
		p := f.Open(t)
		require.NoError(t, p.Write("ToDoItems", []byte(`{"7":{"id":7}}`)))
		require.NoError(t, p.Close())

		reopened := f.Reopen(t)
		t.Cleanup(func() { reopened.Close() })
		got, err := reopened.Read("ToDoItems")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"7":{"id":7}}`), got)
	})
}
