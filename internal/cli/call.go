package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/bridge"
)

func newCallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call <method> [json-args]",
		Short: "Invoke a store method with a JSON argument object",
		Long: fmt.Sprintf(`Call sends one named call through the dispatcher and prints the
result as JSON, the same shape an embedding host receives.

Methods: %s

Example:
  todo call upsert '{"name":"Ship it","dueAt":1700000000000,"done":false}'
  todo call delete '{"id":3}'`, strings.Join(bridge.Methods, ", ")),
		Args: userArgs(cobra.RangeArgs(1, 2)),
		RunE: a.storeRunE(func(cmd *cobra.Command, args []string) error {
			callArgs := bridge.Args{}
			if len(args) == 2 {
				if err := json.Unmarshal([]byte(args[1]), &callArgs); err != nil {
					return invalidArg(fmt.Errorf("parse args: %w", err))
				}
			}
			d, err := a.dispatcher()
			if err != nil {
				return err
			}
			res, callErr := d.Call(args[0], callArgs)
			if res != nil {
				if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			}
			return callErr
		}),
	}
}
