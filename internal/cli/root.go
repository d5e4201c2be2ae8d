package cli

import (
	"github.com/spf13/cobra"

	"github.com/kadena-community/pactup/internal/config"
)

// Execute builds the pactup command tree and runs it. cmd/pactup's
// main calls this directly.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand assembles the full subcommand tree wired onto a
// lazily-built app (spec.md §6).
func NewRootCommand() *cobra.Command {
	var baseDir, archOverride string
	var a *app

	root := &cobra.Command{
		Use:           "pactup",
		Short:         "A per-user version manager for pact",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnvironment()
			if baseDir != "" {
				cfg.BaseDir = baseDir
			}
			if archOverride != "" {
				cfg.ArchOverride = archOverride
			}
			built, err := newApp(cfg)
			if err != nil {
				return err
			}
			a = built
			return nil
		},
	}

	root.PersistentFlags().StringVar(&baseDir, "base-dir", "", "override PACTUP_DIR")
	root.PersistentFlags().StringVar(&archOverride, "arch", "", "override the detected CPU architecture")

	root.AddCommand(
		newInstallCommand(&a),
		newUseCommand(&a),
		newListCommand(&a),
		newListRemoteCommand(&a),
		newAliasCommand(&a),
		newUnaliasCommand(&a),
		newDefaultCommand(&a),
		newCurrentCommand(&a),
		newWhichCommand(&a),
		newEnvCommand(&a),
		newExecCommand(&a),
		newUninstallCommand(&a),
	)

	return root
}
