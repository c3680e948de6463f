// Package bridge dispatches named calls with loosely typed arguments to the
// store and turns the results into caller-form maps. It is the layer a host
// application (the CLI, or any embedding) talks to.
package bridge

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/todos/internal/store"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// Method names accepted by Call.
const (
	MethodGetAll   = "getAll"
	MethodGetOne   = "getOne"
	MethodUpsert   = "upsert"
	MethodDelete   = "delete"
	MethodClearAll = "clearAll"
)

// Methods lists the accepted method names.
var Methods = []string{MethodGetAll, MethodGetOne, MethodUpsert, MethodDelete, MethodClearAll}

// ErrUnknownMethod reports a call to a method the dispatcher does not serve.
var ErrUnknownMethod = fmt.Errorf("%w: unknown method", types.ErrInvalidArgument)

// Result is the caller-form response of one call.
type Result map[string]any

// Dispatcher routes calls to a Store.
type Dispatcher struct {
	store  *store.Store
	logger *slog.Logger
}

// New returns a Dispatcher over s. A nil logger discards call logs.
func New(s *store.Store, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{store: s, logger: logger}
}

// Call runs method with args. On a persistence failure both the result and
// an error wrapping types.ErrPersistence are returned: the change was
// applied but may not survive a restart. Every other error returns a nil
// result.
func (d *Dispatcher) Call(method string, args Args) (Result, error) {
	callID := newCallID()
	start := time.Now()
	logger := d.logger.With("call_id", callID, "method", method)

	res, err := d.dispatch(method, args)

	switch {
	case err == nil:
		logger.Debug("call resolved", "elapsed", time.Since(start))
	case errors.Is(err, types.ErrPersistence):
		logger.Warn("call applied but not persisted", "error", err)
	default:
		logger.Info("call rejected", "error", err)
	}
	return res, err
}

func (d *Dispatcher) dispatch(method string, args Args) (Result, error) {
	switch method {
	case MethodGetAll:
		return Result{"todos": callerForm(d.store.GetAll())}, nil

	case MethodGetOne:
		todo, err := d.store.GetOne(types.LookupRequest{ID: args.Int("id")})
		if err != nil {
			return nil, err
		}
		return Result{"todo": todo.Fields()}, nil

	case MethodUpsert:
		res, err := d.store.Upsert(types.UpsertRequest{
			ID:    args.Int("id"),
			Name:  args.String("name"),
			DueAt: args.Float("dueAt"),
			Done:  args.Bool("done"),
		})
		if err != nil && !errors.Is(err, types.ErrPersistence) {
			return nil, err
		}
		return Result{
			"id":     res.ID,
			"todos":  callerForm(res.Todos),
			"upsert": fmt.Sprintf("ToDo with id %d updated/added!", res.ID),
		}, err

	case MethodDelete:
		id := args.Int("id")
		remaining, err := d.store.Delete(types.LookupRequest{ID: id})
		if err != nil && !errors.Is(err, types.ErrPersistence) {
			return nil, err
		}
		return Result{
			"todos":      callerForm(remaining),
			"eliminated": fmt.Sprintf("ToDo with id %d eliminated!", *id),
		}, err

	case MethodClearAll:
		remaining, err := d.store.ClearAll()
		return Result{
			"todos":      callerForm(remaining),
			"eliminated": "All ToDos deleted!",
		}, err

	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMethod, method)
	}
}

// callerForm converts records to their caller-facing maps. The result is
// never nil so it encodes as a JSON array.
func callerForm(todos []types.Todo) []map[string]any {
	out := make([]map[string]any, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.Fields())
	}
	return out
}

// newCallID returns a UUID v7 used to correlate call logs.
func newCallID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
