package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/bridge"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// run dispatches one call and renders its result. A result that comes back
// with a persistence error is still printed before the error is returned.
func (a *app) run(cmd *cobra.Command, method string, args bridge.Args) error {
	d, err := a.dispatcher()
	if err != nil {
		return err
	}
	res, callErr := d.Call(method, args)
	if res != nil {
		if err := a.render(cmd.OutOrStdout(), res); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return callErr
}

// render prints res as JSON in --json mode and as text otherwise.
func (a *app) render(w io.Writer, res bridge.Result) error {
	if a.flags.jsonMode {
		return writeJSON(w, res)
	}
	for _, key := range []string{"upsert", "eliminated"} {
		if msg, ok := res[key].(string); ok {
			fmt.Fprintln(w, msg)
		}
	}
	if todo, ok := res["todo"].(map[string]any); ok {
		return writeTable(w, []map[string]any{todo})
	}
	if list, ok := res["todos"].([]map[string]any); ok {
		return writeTable(w, list)
	}
	return nil
}

// parseID parses a todo id given on the command line.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, invalidArg(fmt.Errorf("id %q is not an integer", s))
	}
	return id, nil
}

// invalidArg marks err as a caller mistake.
func invalidArg(err error) error {
	return fmt.Errorf("%w: %w", types.ErrInvalidArgument, err)
}

// userArgs wraps a positional-args check so its failures exit as user errors.
func userArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return invalidArg(err)
		}
		return nil
	}
}
