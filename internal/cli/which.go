package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kadena-community/pactup/internal/layout"
)

func newWhichCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "which [version]",
		Short: "Print the path to a resolved version's binary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) == 1 {
				raw = args[0]
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			_, dir, err := (*a).resolveSelector(raw, cwd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), layout.BinPath(dir))
			return nil
		},
	}
}
