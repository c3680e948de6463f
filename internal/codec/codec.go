// Package codec converts the todos mapping to and from the byte encoding
// kept in the backing slot.
//
// The encoding is a JSON object whose keys are the decimal record ids and
// whose values are {id, name, dueAt, done} records:
//
//	{"1":{"id":1,"name":"Profit","dueAt":1634569785944,"done":false}}
//
// DecodeAll is the exact inverse of EncodeAll.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// todoJSON mirrors a stored record. Pointer fields let DecodeAll tell a
// missing field from a zero value.
type todoJSON struct {
	ID    *int64   `json:"id"`
	Name  *string  `json:"name"`
	DueAt *float64 `json:"dueAt"`
	Done  *bool    `json:"done"`
}

// EncodeAll serializes the full id to Todo mapping. encoding/json writes map
// keys in sorted order, so equal mappings produce equal bytes.
func EncodeAll(todos map[int64]types.Todo) ([]byte, error) {
	out := make(map[string]types.Todo, len(todos))
	for id, t := range todos {
		if t.ID != id {
			return nil, fmt.Errorf("todo keyed %d carries id %d", id, t.ID)
		}
		out[strconv.FormatInt(id, 10)] = t
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal todos: %w", err)
	}
	return data, nil
}

// DecodeAll parses bytes produced by EncodeAll. It fails with an error
// wrapping types.ErrDecode on malformed JSON, a non-object top level, a
// non-canonical key, a missing or mistyped field, or a key that disagrees
// with its record id. Unknown fields are ignored. On failure no partial
// mapping is returned.
func DecodeAll(data []byte) (map[int64]types.Todo, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", types.ErrDecode)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrDecode, err)
	}

	todos := make(map[int64]types.Todo, len(raw))
	for key, rec := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || strconv.FormatInt(id, 10) != key {
			return nil, fmt.Errorf("%w: key %q is not a todo id", types.ErrDecode, key)
		}
		t, err := decodeTodo(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %w", types.ErrDecode, key, err)
		}
		if t.ID != id {
			return nil, fmt.Errorf("%w: key %q holds todo %d", types.ErrDecode, key, t.ID)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%w: key %q: %w", types.ErrDecode, key, err)
		}
		todos[id] = t
	}
	return todos, nil
}

// decodeTodo parses one record and requires all four fields.
func decodeTodo(rec json.RawMessage) (types.Todo, error) {
	var tj todoJSON
	if err := json.Unmarshal(rec, &tj); err != nil {
		return types.Todo{}, err
	}
	switch {
	case tj.ID == nil:
		return types.Todo{}, fmt.Errorf("missing field id")
	case tj.Name == nil:
		return types.Todo{}, fmt.Errorf("missing field name")
	case tj.DueAt == nil:
		return types.Todo{}, fmt.Errorf("missing field dueAt")
	case tj.Done == nil:
		return types.Todo{}, fmt.Errorf("missing field done")
	}
	return types.Todo{
		ID:    *tj.ID,
		Name:  *tj.Name,
		DueAt: *tj.DueAt,
		Done:  *tj.Done,
	}, nil
}
