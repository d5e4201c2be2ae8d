// Package assetmatch selects the single downloadable asset that matches
// the current Platform out of a Release's asset list, by building a
// regex over the platform's filename aliases (spec.md §4.4).
package assetmatch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kadena-community/pactup/internal/catalog"
	"github.com/kadena-community/pactup/internal/platform"
	"github.com/kadena-community/pactup/internal/version"
)

// Match is a pure function of (release, plat, toolName): it never
// mutates either argument and returns the same asset regardless of the
// order assets appear in the release (spec.md P7).
func Match(release catalog.Release, plat platform.Platform, toolName string) (catalog.Asset, bool) {
	name := releaseNameToken(release.Tag)

	if a, ok := find(release.Assets, buildPattern(toolName, name, plat, true)); ok {
		return a, true
	}

	// Fallback: on the 64-bit default arch, retry with the arch group
	// removed — a filename with no arch token is treated as implicit x64.
	if plat.Arch.IsDefault64Bit() {
		if a, ok := find(release.Assets, buildPattern(toolName, name, plat, false)); ok {
			return a, true
		}
	}

	return catalog.Asset{}, false
}

// find returns the matching asset with the smallest name (then URL), so
// the result does not depend on the order of assets.
func find(assets []catalog.Asset, re *regexp.Regexp) (catalog.Asset, bool) {
	var best catalog.Asset
	found := false
	for _, a := range assets {
		if !re.MatchString(strings.ToLower(a.Name)) {
			continue
		}
		if !found || a.Name < best.Name || (a.Name == best.Name && a.DownloadURL < best.DownloadURL) {
			best, found = a, true
		}
	}
	return best, found
}

// releaseNameToken renders the release's tag the way its filename embeds
// it: numeric for Semver ("M(.N)?(.P)?" form, but we always emit the
// full M.N.P since that's what upstream archive names carry), literal
// for symbolic tags.
func releaseNameToken(v version.Version) string {
	switch v.Kind() {
	case version.KindSemver:
		return fmt.Sprintf(`%d\.%d\.%d`, v.Major(), v.Minor(), v.Patch())
	default:
		return regexp.QuoteMeta(v.Display())
	}
}

func alternation(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return strings.Join(quoted, "|")
}

// buildPattern constructs the regex described in spec.md §4.4. When
// includeArch is false the arch groups are dropped entirely, which is
// how the x64-fallback retry treats an arch-less filename as implicit.
func buildPattern(toolName, nameToken string, plat platform.Platform, includeArch bool) *regexp.Regexp {
	osAlt := alternation(plat.OS.Aliases())
	var body string
	if includeArch {
		archAlt := alternation(plat.Arch.Aliases())
		// Arch is mandatory here, attached to either side of the OS
		// token; this is what makes an arch-less filename fail the
		// strict pass and fall through to the x64-implicit retry below.
		body = fmt.Sprintf(`(?:(?:%s)-(?:%s)|(?:%s)-(?:%s))(?:-[0-9][0-9.]*)?(?:-(?:%s))?`,
			osAlt, archAlt, archAlt, osAlt, archAlt)
	} else {
		body = fmt.Sprintf(`(?:%s)(?:-[0-9][0-9.]*)?`, osAlt)
	}

	pattern := fmt.Sprintf(`^%s-%s-%s\.(tar\.gz|tar\.xz|zip)$`,
		regexp.QuoteMeta(toolName), nameToken, body)

	// Programming error if this doesn't compile — the alternation is
	// built entirely from QuoteMeta'd literals.
	return regexp.MustCompile(pattern)
}
