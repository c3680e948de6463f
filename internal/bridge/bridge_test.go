package bridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todos/internal/memstore"
	"github.com/mesh-intelligence/todos/internal/store"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// brokenWrites fails every write.
type brokenWrites struct{ *memstore.Provider }

func (brokenWrites) Write(string, []byte) error { return errors.New("read-only medium") }

func setupDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	return New(store.New(memstore.New(), types.DefaultSlotKey), nil)
}

// decodeArgs mirrors how a host hands over JSON call arguments.
func decodeArgs(t *testing.T, raw string) Args {
	t.Helper()
	var a Args
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	return a
}

func todoIDs(t *testing.T, res Result) []int64 {
	t.Helper()
	list, ok := res["todos"].([]map[string]any)
	require.True(t, ok, "todos has type %T", res["todos"])
	out := make([]int64, len(list))
	for i, m := range list {
		out[i] = m["id"].(int64)
	}
	return out
}

func TestCall_GetAll(t *testing.T) {
	d := setupDispatcher(t)

	res, err := d.Call(MethodGetAll, nil)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3, 4}, todoIDs(t, res))
	first := res["todos"].([]map[string]any)[0]
	assert.Equal(t, map[string]any{
		"id":    int64(1),
		"name":  "Interview with Ionic",
		"dueAt": float64(1_634_569_785_944),
		"done":  true,
	}, first)
}

func TestCall_GetOne(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		wantErr error
		wantID  int64
	}{
		{name: "existing id", args: `{"id":3}`, wantID: 3},
		{name: "absent id", args: `{"id":30}`, wantErr: types.ErrNotFound},
		{name: "missing id", args: `{}`, wantErr: types.ErrInvalidArgument},
		{name: "string id reads as missing", args: `{"id":"3"}`, wantErr: types.ErrInvalidArgument},
		{name: "fractional id reads as missing", args: `{"id":3.5}`, wantErr: types.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupDispatcher(t)

			res, err := d.Call(MethodGetOne, decodeArgs(t, tt.args))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, res["todo"].(map[string]any)["id"])
		})
	}
}

func TestCall_Upsert(t *testing.T) {
	d := setupDispatcher(t)

	res, err := d.Call(MethodUpsert, decodeArgs(t, `{"name":"Buy milk","dueAt":1000,"done":false}`))
	require.NoError(t, err)
	assert.Equal(t, int64(5), res["id"])
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, todoIDs(t, res))
	assert.Equal(t, "ToDo with id 5 updated/added!", res["upsert"])

	res, err = d.Call(MethodUpsert, decodeArgs(t, `{"id":2,"name":"Renamed","dueAt":2000,"done":true}`))
	require.NoError(t, err)
	assert.Equal(t, int64(2), res["id"])

	one, err := d.Call(MethodGetOne, decodeArgs(t, `{"id":2}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"id":    int64(2),
		"name":  "Renamed",
		"dueAt": float64(2000),
		"done":  true,
	}, one["todo"])
}

func TestCall_UpsertMalformed(t *testing.T) {
	tests := []struct {
		name string
		args string
	}{
		{name: "missing name", args: `{"dueAt":1,"done":false}`},
		{name: "missing dueAt", args: `{"name":"a","done":false}`},
		{name: "missing done", args: `{"name":"a","dueAt":1}`},
		{name: "done as string", args: `{"name":"a","dueAt":1,"done":"false"}`},
		{name: "dueAt as string", args: `{"name":"a","dueAt":"tomorrow","done":false}`},
		{name: "empty name", args: `{"name":"","dueAt":1,"done":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupDispatcher(t)

			res, err := d.Call(MethodUpsert, decodeArgs(t, tt.args))

			assert.ErrorIs(t, err, types.ErrInvalidArgument)
			assert.Nil(t, res)
		})
	}
}

func TestCall_Delete(t *testing.T) {
	d := setupDispatcher(t)

	res, err := d.Call(MethodDelete, decodeArgs(t, `{"id":1}`))
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 4}, todoIDs(t, res))
	assert.Equal(t, "ToDo with id 1 eliminated!", res["eliminated"])

	_, err = d.Call(MethodDelete, decodeArgs(t, `{"id":1}`))
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = d.Call(MethodDelete, decodeArgs(t, `{}`))
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestCall_ClearAll(t *testing.T) {
	d := setupDispatcher(t)

	res, err := d.Call(MethodClearAll, nil)
	require.NoError(t, err)
	assert.Equal(t, "All ToDos deleted!", res["eliminated"])

	encoded, err := json.Marshal(res["todos"])
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(encoded))
}

func TestCall_UnknownMethod(t *testing.T) {
	d := setupDispatcher(t)

	_, err := d.Call("echo", nil)

	assert.ErrorIs(t, err, ErrUnknownMethod)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestCall_PersistenceFailureReturnsResult(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	s := store.New(brokenWrites{memstore.New()}, types.DefaultSlotKey)
	d := New(s, logger)

	res, err := d.Call(MethodUpsert, decodeArgs(t, `{"name":"x","dueAt":1,"done":true}`))

	require.ErrorIs(t, err, types.ErrPersistence)
	require.NotNil(t, res)
	assert.Equal(t, int64(5), res["id"])
	assert.Contains(t, logs.String(), "call applied but not persisted")
	assert.Contains(t, logs.String(), "call_id=")

	res, err = d.Call(MethodClearAll, nil)
	require.ErrorIs(t, err, types.ErrPersistence)
	assert.Empty(t, res["todos"])
}

func TestArgs(t *testing.T) {
	a := Args{
		"int":      7,
		"int64":    int64(8),
		"float":    9.0,
		"fraction": 9.5,
		"str":      "s",
		"bool":     false,
	}

	assert.Equal(t, int64(7), *a.Int("int"))
	assert.Equal(t, int64(8), *a.Int("int64"))
	assert.Equal(t, int64(9), *a.Int("float"))
	assert.Nil(t, a.Int("fraction"))
	assert.Nil(t, a.Int("str"))
	assert.Nil(t, a.Int("absent"))

	assert.Equal(t, 9.5, *a.Float("fraction"))
	assert.Equal(t, 7.0, *a.Float("int"))
	assert.Nil(t, a.Float("bool"))

	assert.Equal(t, "s", *a.String("str"))
	assert.Nil(t, a.String("int"))

	assert.False(t, *a.Bool("bool"))
	assert.Nil(t, a.Bool("str"))

	var nilArgs Args
	assert.Nil(t, nilArgs.Int("id"))
}
