package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/bridge"
	"github.com/mesh-intelligence/todos/pkg/types"
)

func newClearCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every todo",
		Long:  "Delete every todo. The store is left empty; it does not fall back to the starter list.",
		Args:  userArgs(cobra.NoArgs),
		RunE: a.storeRunE(func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("%w: clear deletes every todo, pass --yes to confirm", types.ErrInvalidArgument)
			}
			return a.run(cmd, bridge.MethodClearAll, nil)
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deleting every todo")
	return cmd
}
