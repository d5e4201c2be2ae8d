package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kadena-community/pactup/internal/shellbind"
)

func newUseCommand(a **app) *cobra.Command {
	var silentIfUnchanged bool

	cmd := &cobra.Command{
		Use:   "use [version]",
		Short: "Repoint this shell's active version",
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

			v, dir, err := (*a).resolveSelector(raw, cwd)
			if err != nil {
				return err
			}

			path := os.Getenv("PACTUP_MULTISHELL_PATH")
			if path == "" {
				path, err = shellbind.Binder{}.NewPath()
				if err != nil {
					return err
				}
				if err := (shellbind.Binder{}).CreatePointingAt(path, dir); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "export PACTUP_MULTISHELL_PATH=%q\n", path)
			} else {
				if silentIfUnchanged {
					if current, err := shellbind.Resolve(path); err == nil && current == dir {
						return nil
					}
				}
				if err := (shellbind.Binder{}).Repoint(path, dir); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "now using %s\n", v.Display())
			return nil
		},
	}

	cmd.Flags().BoolVar(&silentIfUnchanged, "silent-if-unchanged", false, "skip output if the resolved version hasn't changed")
	return cmd
}
