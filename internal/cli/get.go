package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/bridge"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one todo",
		Args:  userArgs(cobra.ExactArgs(1)),
		RunE: a.storeRunE(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, bridge.MethodGetOne, bridge.Args{"id": id})
		}),
	}
}
