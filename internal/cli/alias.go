package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newAliasCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "alias <version> <name>",
		Short: "Pin a name to an installed version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			v, dir, err := (*a).resolveSelector(args[0], cwd)
			if err != nil {
				return err
			}
			if err := (*a).aliases.Create(args[1], dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[1], v.Display())
			return nil
		},
	}
}

func newUnaliasCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "unalias <name>",
		Short: "Remove a named alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return (*a).aliases.Delete(args[0])
		},
	}
}

func newDefaultCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "default [version]",
		Short: "Show or set the default version",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				target, err := (*a).aliases.Resolve("default")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), target)
				return nil
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			v, dir, err := (*a).resolveSelector(args[0], cwd)
			if err != nil {
				return err
			}
			if err := (*a).aliases.Create("default", dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "default -> %s\n", v.Display())
			return nil
		},
	}
}
