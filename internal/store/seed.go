package store

import "github.com/mesh-intelligence/todos/pkg/types"

// seedDueAt is the shared due timestamp of the seed records (epoch ms).
const seedDueAt = 1_634_569_785_944

// SeedTodos returns the dataset a store starts from when the backing slot is
// absent or undecodable. Each call returns a fresh mapping.
func SeedTodos() map[int64]types.Todo {
	return map[int64]types.Todo{
		1: {ID: 1, Name: "Interview with Ionic", DueAt: seedDueAt, Done: true},
		2: {ID: 2, Name: "Create amazing product", DueAt: seedDueAt},
		3: {ID: 3, Name: "???", DueAt: seedDueAt},
		4: {ID: 4, Name: "Profit", DueAt: seedDueAt},
	}
}
