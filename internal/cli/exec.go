package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kadena-community/pactup/internal/layout"
)

func newExecCommand(a **app) *cobra.Command {
	var using string

	cmd := &cobra.Command{
		Use:                "exec -- <cmd> [args...]",
		Short:              "Run a command with a specific version's bin/ on PATH",
		DisableFlagParsing: false,
		Args:               cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if using == "" {
				return fmt.Errorf("exec requires --using <version>")
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			_, dir, err := (*a).resolveSelector(using, cwd)
			if err != nil {
				return err
			}

			binDir := filepath.Dir(layout.BinPath(dir))
			c := exec.Command(args[0], args[1:]...)
			c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
			c.Env = append(os.Environ(), "PATH="+prependPath(binDir))
			if err := c.Run(); err != nil {
				if exitErr, ok := err.(*exec.ExitError); ok {
					os.Exit(exitErr.ExitCode())
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&using, "using", "", "the version selector to run under")
	return cmd
}

func prependPath(dir string) string {
	existing := os.Getenv("PATH")
	if existing == "" {
		return dir
	}
	return dir + string(os.PathListSeparator) + existing
}
