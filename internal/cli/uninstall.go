package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kadena-community/pactup/internal/version"
)

func newUninstallCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall <version>",
		Short: "Remove an installed version and any aliases pointing at it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := version.Parse(args[0])
			if err != nil {
				return err
			}
			dir, err := (*a).layout.InstallationDir(v.Display())
			if err != nil {
				return err
			}
			if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
				return fmt.Errorf("%s is not installed", v.Display())
			}

			entries, err := (*a).aliases.List()
			if err == nil {
				for _, e := range entries {
					if e.Target == dir {
						_ = (*a).aliases.Delete(e.Name)
					}
				}
			}

			if err := os.RemoveAll(dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uninstalled %s\n", v.Display())
			return nil
		},
	}
}
