package types

import (
	"errors"
	"fmt"
)

// Operation errors. Callers classify failures with errors.Is.
var (
	// ErrInvalidArgument reports a required field that is missing or malformed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound reports a referenced id that is absent from the store.
	ErrNotFound = errors.New("todo not found")

	// ErrPersistence reports that encoding or writing the slot failed after
	// the in-memory mutation was applied. The change is visible for the rest
	// of the process run but may not survive a restart.
	ErrPersistence = errors.New("persist todos")

	// ErrDecode reports backing bytes that do not parse into the stored shape.
	// The store absorbs it during hydration and starts from seed data.
	ErrDecode = errors.New("decode todos")
)

// Record validation errors. Both wrap ErrInvalidArgument.
var (
	ErrInvalidID   = fmt.Errorf("%w: todo id must be non-negative", ErrInvalidArgument)
	ErrInvalidName = fmt.Errorf("%w: todo name must not be empty", ErrInvalidArgument)
)
