package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kadena-community/pactup/internal/userversion"
	"github.com/kadena-community/pactup/internal/version"
)

func newListCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List installed versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			installed, err := (*a).installedVersions()
			if err != nil {
				return err
			}
			aliases, err := (*a).aliases.List()
			if err != nil {
				return err
			}
			aliasesByVersion := map[string][]string{}
			for _, e := range aliases {
				aliasesByVersion[e.Version] = append(aliasesByVersion[e.Version], e.Name)
			}

			for _, v := range installed {
				line := v.Display()
				if names := aliasesByVersion[v.Display()]; len(names) > 0 {
					sort.Strings(names)
					line += " (" + strings.Join(names, ", ") + ")"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func newListRemoteCommand(a **app) *cobra.Command {
	var filter, sortOrder string
	var latestOnly bool

	cmd := &cobra.Command{
		Use:   "list-remote",
		Short: "List versions available upstream",
		RunE: func(cmd *cobra.Command, args []string) error {
			releases, err := (*a).catalog.List(cmd.Context(), (*a).cfg.Repos)
			if err != nil {
				return err
			}

			var uv userversion.UserVersion
			if filter != "" {
				uv, err = userversion.Parse(filter)
				if err != nil {
					return err
				}
			}

			tags := make([]version.Version, 0, len(releases))
			for _, r := range releases {
				if filter != "" && !uv.Matches(r.Tag, userversion.Config{}) {
					continue
				}
				tags = append(tags, r.Tag)
			}

			// --latest reduces the already-filtered set to its single
			// maximum tag (spec.md §8 S6), not the catalog-wide max.
			if latestOnly {
				best, ok := version.Max(tags)
				if !ok {
					return fmt.Errorf("no upstream release matches %q", filter)
				}
				tags = []version.Version{best}
			}

			sort.Slice(tags, func(i, j int) bool { return version.Less(tags[i], tags[j]) })
			if sortOrder == "desc" {
				for i, j := 0, len(tags)-1; i < j; i, j = i+1, j-1 {
					tags[i], tags[j] = tags[j], tags[i]
				}
			}

			for _, t := range tags {
				fmt.Fprintln(cmd.OutOrStdout(), t.Display())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "filter by a UserVersion selector (e.g. 4, 4.12, ^4.12.0)")
	cmd.Flags().StringVar(&sortOrder, "sort", "asc", "asc|desc")
	cmd.Flags().BoolVar(&latestOnly, "latest", false, "reduce the filtered set to its single maximum tag")
	return cmd
}
