package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kadena-community/pactup/internal/assetmatch"
	"github.com/kadena-community/pactup/internal/catalog"
	"github.com/kadena-community/pactup/internal/installer"
	"github.com/kadena-community/pactup/internal/layout"
	"github.com/kadena-community/pactup/internal/platform"
	"github.com/kadena-community/pactup/internal/userversion"
	"github.com/kadena-community/pactup/internal/version"
)

func newInstallCommand(a **app) *cobra.Command {
	var nightly, latest, force bool
	var progress string

	cmd := &cobra.Command{
		Use:   "install [version]",
		Short: "Download and install a pact release",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			switch {
			case len(args) == 1:
				raw = args[0]
			case latest:
				raw = "latest"
			case nightly:
				raw = "nightly"
			}

			var uv userversion.UserVersion
			var err error
			if raw == "" {
				return fmt.Errorf("install requires a version, --latest, or --nightly")
			}
			uv, err = userversion.Parse(raw)
			if err != nil {
				return err
			}

			plat, err := platform.Detect((*a).cfg.ArchOverride)
			if err != nil {
				return err
			}

			release, err := resolveRelease(cmd, *a, uv, raw)
			if err != nil {
				return err
			}

			asset, ok := assetmatch.Match(release, plat, layout.ToolName())
			if !ok {
				return fmt.Errorf("no release asset matches this platform for %s", release.Tag.Display())
			}

			opts := installer.Options{
				Version:       release.Tag,
				DownloadURL:   asset.DownloadURL,
				AssetFileName: asset.Name,
				Force:         force,
				ShowProgress:  progress != "never",
			}
			if inferred, ok := uv.InferredAlias(); ok {
				opts.InferredAlias = inferred
				opts.HasInferred = true
			}

			dir, err := (*a).installer.Install(cmd.Context(), opts)
			if err != nil {
				if _, ok := err.(*installer.AlreadyInstalledError); ok {
					fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
					return nil
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "installed %s at %s\n", release.Tag.Display(), dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&nightly, "nightly", false, "install the latest nightly build")
	cmd.Flags().BoolVar(&latest, "latest", false, "install the latest non-prerelease release")
	cmd.Flags().BoolVar(&force, "force", false, "reinstall even if already present")
	cmd.Flags().StringVar(&progress, "progress", "auto", "progress display: auto|always|never")

	return cmd
}

// resolveRelease maps a UserVersion selector to the single upstream
// Release it names (spec.md §4.2/§4.3). "latest" always re-queries the
// upstream max; any other exact tag (a plain semver or a nightly build
// string) is fetched directly by tag; everything else (a range, a bare
// major or major.minor) requires listing every release and picking the
// max match.
func resolveRelease(cmd *cobra.Command, a *app, uv userversion.UserVersion, raw string) (catalog.Release, error) {
	if inferred, ok := uv.InferredAlias(); ok && inferred.Kind() == version.KindLatest {
		return a.catalog.Latest(cmd.Context(), a.cfg.Repos)
	}
	if uv.Kind() == userversion.KindFull {
		return a.catalog.GetByTag(cmd.Context(), a.cfg.Repos, raw)
	}

	releases, err := a.catalog.List(cmd.Context(), a.cfg.Repos)
	if err != nil {
		return catalog.Release{}, err
	}

	urReleases := make([]userversion.Release, 0, len(releases))
	for _, r := range releases {
		urReleases = append(urReleases, userversion.Release{Tag: r.Tag, Data: r})
	}

	best, ok := uv.ToRelease(urReleases, userversion.Config{})
	if !ok {
		return catalog.Release{}, fmt.Errorf("no upstream release matches %q", raw)
	}
	return best.Data.(catalog.Release), nil
}
