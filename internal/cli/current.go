package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kadena-community/pactup/internal/version"
)

func newCurrentCommand(a **app) *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Print the version this shell is currently using",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := os.Getenv("PACTUP_MULTISHELL_PATH")
			if path == "" {
				return fmt.Errorf("no active version for this shell; run `pactup use` first")
			}
			dir, err := filepath.EvalSymlinks(path)
			if err != nil {
				return err
			}
			if showPath {
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			}
			if dir == bypassedSentinelPath() {
				fmt.Fprintln(cmd.OutOrStdout(), version.Bypassed.Display())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Base(dir))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "print the installation directory instead of the version name")
	return cmd
}
