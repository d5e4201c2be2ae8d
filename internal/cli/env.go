package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/kadena-community/pactup/internal/layout"
	"github.com/kadena-community/pactup/internal/shellbind"
	"github.com/kadena-community/pactup/internal/shellscript"
)

func newEnvCommand(a **app) *cobra.Command {
	var shellName string
	var asJSON bool
	var useOnCD bool

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print the shell fragment that sets up pactup for this shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			if shellName == "" {
				shellName = defaultShellGuess()
			}
			sh, ok := shellscript.Parse(shellName)
			if !ok {
				return fmt.Errorf("unrecognized shell %q", shellName)
			}

			path := os.Getenv("PACTUP_MULTISHELL_PATH")
			var dir string
			if path != "" {
				if resolved, err := shellbind.Resolve(path); err == nil {
					dir = resolved
				}
			}
			if dir == "" {
				target, err := (*a).aliases.Resolve("default")
				if err != nil {
					return fmt.Errorf("no active version and no default alias set: %w", err)
				}
				dir = target

				defaultAlias, err := (*a).layout.AliasPath("default")
				if err != nil {
					return err
				}
				newPath, err := shellbind.Binder{}.NewPath()
				if err != nil {
					return err
				}
				if err := (shellbind.Binder{}).CreatePointingAt(newPath, defaultAlias); err != nil {
					return err
				}
				path = newPath
			}

			if asJSON {
				out, err := json.Marshal(map[string]string{
					"multishellPath": path,
					"installDir":     dir,
					"binPath":        layout.BinPath(dir),
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), shellscript.SetEnvVar(sh, "PACTUP_MULTISHELL_PATH", path))
			fmt.Fprintln(cmd.OutOrStdout(), shellscript.PathExport(sh, filepath.Dir(layout.BinPath(path))))
			if useOnCD {
				fmt.Fprintln(cmd.OutOrStdout(), shellscript.UseOnCD(sh, (*a).cfg.VersionFileStrategy))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&shellName, "shell", "", "bash|zsh|fish|powershell (default: $SHELL)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit machine-readable JSON instead of a shell fragment")
	cmd.Flags().BoolVar(&useOnCD, "use-on-cd", false, "also emit the autoload-on-cd hook")
	return cmd
}

func defaultShellGuess() string {
	if runtime.GOOS == "windows" {
		return "powershell"
	}
	if s := os.Getenv("SHELL"); s != "" {
		return filepath.Base(s)
	}
	return "bash"
}
