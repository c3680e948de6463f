package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/bridge"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all todos in ascending id order",
		Args:    userArgs(cobra.NoArgs),
		RunE: a.storeRunE(func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, bridge.MethodGetAll, nil)
		}),
	}
}
