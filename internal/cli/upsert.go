package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/bridge"
)

func newUpsertCmd(a *app) *cobra.Command {
	var (
		id   int64
		name string
		due  string
		done bool
	)
	cmd := &cobra.Command{
		Use:   "upsert --name <name> --due <when> --done=<bool> [--id <id>]",
		Short: "Add a todo, or replace the todo with the given id",
		Long: `Upsert stores a todo. Without --id the next free id is assigned.
With --id every field of that todo is replaced.

--due takes epoch milliseconds or an RFC 3339 timestamp.
Only flags given on the command line are sent, so a missing
--name, --due, or --done is rejected.`,
		Args: userArgs(cobra.NoArgs),
		RunE: a.storeRunE(func(cmd *cobra.Command, args []string) error {
			callArgs := bridge.Args{}
			flags := cmd.Flags()
			if flags.Changed("id") {
				callArgs["id"] = id
			}
			if flags.Changed("name") {
				callArgs["name"] = name
			}
			if flags.Changed("due") {
				ms, err := parseDue(due)
				if err != nil {
					return invalidArg(err)
				}
				callArgs["dueAt"] = ms
			}
			if flags.Changed("done") {
				callArgs["done"] = done
			}
			return a.run(cmd, bridge.MethodUpsert, callArgs)
		}),
	}
	cmd.Flags().Int64Var(&id, "id", 0, "id of the todo to replace")
	cmd.Flags().StringVar(&name, "name", "", "todo name")
	cmd.Flags().StringVar(&due, "due", "", "due time (epoch ms or RFC 3339)")
	cmd.Flags().BoolVar(&done, "done", false, "completion flag")
	return cmd
}
