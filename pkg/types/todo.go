package types

// Todo is one task entry. Records have no identity beyond ID; storing a
// record under an existing ID replaces every field.
type Todo struct {
	ID    int64   `json:"id"`    // Non-negative, unique within a store.
	Name  string  `json:"name"`  // Human-readable name (required, non-empty).
	DueAt float64 `json:"dueAt"` // Epoch milliseconds; opaque to the store.
	Done  bool    `json:"done"`  // Completion flag.
}

// Fields returns the caller-facing form of the record: the same four fields
// keyed by name. The conversion is total and lossless.
func (t Todo) Fields() map[string]any {
	return map[string]any{
		"id":    t.ID,
		"name":  t.Name,
		"dueAt": t.DueAt,
		"done":  t.Done,
	}
}

// Validate checks the record invariants that hold for every stored todo.
// Returns ErrInvalidID for a negative ID and ErrInvalidName for an empty name.
func (t Todo) Validate() error {
	if t.ID < 0 {
		return ErrInvalidID
	}
	if t.Name == "" {
		return ErrInvalidName
	}
	return nil
}

// LookupRequest identifies a single todo for GetOne and Delete.
// A nil ID means the caller did not supply one.
type LookupRequest struct {
	ID *int64 `json:"id" validate:"required,gte=0"`
}

// UpsertRequest carries the fields for an insert-or-replace. ID is optional:
// when nil the store assigns the next free id. Every other field is required
// and a nil pointer means the caller omitted it.
type UpsertRequest struct {
	ID    *int64   `json:"id,omitempty" validate:"omitempty,gte=0"`
	Name  *string  `json:"name" validate:"required,min=1"`
	DueAt *float64 `json:"dueAt" validate:"required"`
	Done  *bool    `json:"done" validate:"required"`
}

// UpsertResult is returned by a successful (or persistence-failed) upsert.
type UpsertResult struct {
	ID    int64  `json:"id"`
	Todos []Todo `json:"todos"`
}

// Ptr returns a pointer to v. Handy for building requests.
func Ptr[T any](v T) *T {
	return &v
}
