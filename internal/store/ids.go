package store

import (
	"math"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// nextID picks the smallest free id above the current maximum (1 for an
// empty mapping). When the maximum is math.MaxInt64 there is nothing above
// it, so the lowest free non-negative id is used instead.
func nextID(todos map[int64]types.Todo) int64 {
	var maxID int64
	for id := range todos {
		if id > maxID {
			maxID = id
		}
	}

	candidate := maxID + 1
	if maxID == math.MaxInt64 {
		candidate = 0
	}
	for {
		if _, taken := todos[candidate]; !taken {
			return candidate
		}
		candidate++
	}
}
