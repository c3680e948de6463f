package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize todo storage",
		Long:  "Create the configuration and data directories and open the storage backend once.",
		Args:  userArgs(cobra.NoArgs),
		RunE: a.storeRunE(func(cmd *cobra.Command, args []string) error {
			h, err := a.open()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "todo storage initialized")
			fmt.Fprintln(out, "  config: ", filepath.Join(a.configDir, configFileExt))
			fmt.Fprintln(out, "  backend:", h.Config.Backend)
			fmt.Fprintln(out, "  data:   ", h.Config.GetDataDir())
			return nil
		}),
	}
}
