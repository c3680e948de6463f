package integration

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todos/pkg/todos"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// openHandle opens a handle on backend rooted at dir and closes it at cleanup.
func openHandle(t *testing.T, backend, dir string) *todos.Handle {
	t.Helper()
	h, err := todos.Open(types.Config{Backend: backend, DataDir: dir})
	require.NoError(t, err, "Open(%s)", backend)
	t.Cleanup(func() { h.Close() })
	return h
}

// reopen closes h and opens a fresh handle on the same configuration.
func reopen(t *testing.T, h *todos.Handle) *todos.Handle {
	t.Helper()
	require.NoError(t, h.Close())
	return openHandle(t, h.Config.Backend, h.Config.DataDir)
}

func storeIDs(list []types.Todo) []int64 {
	ids := make([]int64, 0, len(list))
	for _, t := range list {
		ids = append(ids, t.ID)
	}
	return ids
}
