// Package userversion parses a user-supplied version selector (an exact
// semver, a partial semver, a semver range, an alias or a symbolic tag)
// and resolves it against a list of known Versions or Releases.
package userversion

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver"
	"golang.org/x/xerrors"

	"github.com/kadena-community/pactup/internal/version"
)

// Kind discriminates the variants of UserVersion.
type Kind int

const (
	KindOnlyMajor Kind = iota
	KindMajorMinor
	KindSemverRange
	KindFull
)

// UserVersion is the tagged value described in spec.md §3.
type UserVersion struct {
	kind       Kind
	major      uint64
	minor      uint64
	constraint *semver.Constraints
	raw        string
	full       version.Version
}

func OnlyMajor(m uint64) UserVersion      { return UserVersion{kind: KindOnlyMajor, major: m} }
func MajorMinor(m, n uint64) UserVersion  { return UserVersion{kind: KindMajorMinor, major: m, minor: n} }
func Full(v version.Version) UserVersion  { return UserVersion{kind: KindFull, full: v} }

func (u UserVersion) Kind() Kind { return u.kind }

var digitsAndDots = regexp.MustCompile(`^v?[0-9]+(\.[0-9]+){0,2}$`)

// Parse mirrors version.Parse's recognition of symbols/nightly/alias,
// but additionally recognizes semver range syntax and bare digit.dot
// forms as OnlyMajor/MajorMinor selectors (spec.md §4.2).
func Parse(raw string) (UserVersion, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return UserVersion{}, xerrors.New("version string is empty")
	}

	if digitsAndDots.MatchString(s) {
		trimmed := strings.TrimPrefix(s, "v")
		parts := strings.Split(trimmed, ".")
		switch len(parts) {
		case 1:
			m, err := strconv.ParseUint(parts[0], 10, 64)
			if err != nil {
				return UserVersion{}, xerrors.Errorf("invalid version %q: %w", raw, err)
			}
			return OnlyMajor(m), nil
		case 2:
			m, err1 := strconv.ParseUint(parts[0], 10, 64)
			n, err2 := strconv.ParseUint(parts[1], 10, 64)
			if err1 != nil || err2 != nil {
				return UserVersion{}, xerrors.Errorf("invalid version %q", raw)
			}
			return MajorMinor(m, n), nil
		default:
			v, err := version.Parse(s)
			if err != nil {
				return UserVersion{}, err
			}
			return Full(v), nil
		}
	}

	// Not purely digits-and-dots: try a semver range first, then fall
	// back to a full symbolic/alias parse.
	if c, err := semver.NewConstraint(s); err == nil {
		return UserVersion{kind: KindSemverRange, constraint: c, raw: s}, nil
	}

	v, err := version.Parse(s)
	if err != nil {
		return UserVersion{}, err
	}
	return Full(v), nil
}

// Config carries the context Matches needs for rule 2 of spec.md §3:
// resolving "Full(alias-name)" against whichever installed version
// currently holds that alias.
type Config struct {
	// Aliases maps an alias name to the installed Version it targets.
	Aliases map[string]version.Version
}

// Matches implements the priority-ordered rules of spec.md §3.
func (u UserVersion) Matches(v version.Version, cfg Config) bool {
	switch u.kind {
	case KindFull:
		if version.Equal(u.full, v) {
			return true
		}
		if u.full.Kind() == version.KindAlias {
			if target, ok := cfg.Aliases[u.full.Text()]; ok && version.Equal(target, v) {
				return true
			}
		}
		return false
	case KindSemverRange:
		sv, ok := v.AsSemver()
		if !ok {
			return false
		}
		return u.constraint.Check(sv)
	case KindOnlyMajor:
		return v.Kind() == version.KindSemver && v.Major() == u.major
	case KindMajorMinor:
		return v.Kind() == version.KindSemver && v.Major() == u.major && v.Minor() == u.minor
	default:
		return false
	}
}

// ToVersion returns the maximum Version in vs matching u, under the
// total order on Version (spec.md P3).
func (u UserVersion) ToVersion(vs []version.Version, cfg Config) (version.Version, bool) {
	var matches []version.Version
	for _, v := range vs {
		if u.Matches(v, cfg) {
			matches = append(matches, v)
		}
	}
	return version.Max(matches)
}

// Release is the minimal shape ToRelease needs, so that userversion does
// not import the catalog package; internal/cli adapts catalog.Release
// into it.
type Release struct {
	Tag  version.Version
	Data interface{}
}

// ToRelease returns the release whose tag is the maximum match, or false
// if none match.
func (u UserVersion) ToRelease(releases []Release, cfg Config) (Release, bool) {
	var best Release
	var bestV version.Version
	found := false
	for _, r := range releases {
		if !u.Matches(r.Tag, cfg) {
			continue
		}
		if !found || version.Less(bestV, r.Tag) {
			best, bestV, found = r, r.Tag, true
		}
	}
	return best, found
}

// InferredAlias returns Some(Latest) for Full(Latest) and
// Some(Nightly(tag)) for Full(Nightly(tag)); otherwise None. It drives
// the post-install side effect of pinning a named alias when the user
// asked for a symbolic version (spec.md §4.2).
func (u UserVersion) InferredAlias() (version.Version, bool) {
	if u.kind != KindFull {
		return version.Version{}, false
	}
	switch u.full.Kind() {
	case version.KindLatest, version.KindNightly:
		return u.full, true
	default:
		return version.Version{}, false
	}
}
