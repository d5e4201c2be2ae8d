// Package version implements the version algebra: a tagged value with a
// total order and a parser, shared by the catalog, the installer and the
// alias store.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver"
	"golang.org/x/xerrors"
)

// Kind discriminates the variants of Version.
type Kind int

const (
	KindSemver Kind = iota
	KindAlias
	KindNightly
	KindLatest
	KindBypassed
)

// nightlyTokens unifies the source's several spellings of "this is a
// development build" under one substring rule (spec.md §3).
var nightlyTokens = []string{"alpha", "nightly", "dev"}

// Version is the tagged value described in spec.md §3.
type Version struct {
	kind    Kind
	major   uint64
	minor   uint64
	patch   uint64
	text    string // Alias name or Nightly tag, verbatim (lowercased)
}

// Semver constructs a Semver variant.
func Semver(major, minor, patch uint64) Version {
	return Version{kind: KindSemver, major: major, minor: minor, patch: patch}
}

// Alias constructs an Alias variant.
func Alias(name string) Version { return Version{kind: KindAlias, text: name} }

// Nightly constructs a Nightly variant.
func Nightly(tag string) Version { return Version{kind: KindNightly, text: tag} }

// Latest is the symbol for "highest non-prerelease available upstream".
var Latest = Version{kind: KindLatest}

// Bypassed is the symbol meaning "use whatever the environment provides".
var Bypassed = Version{kind: KindBypassed}

func (v Version) Kind() Kind { return v.kind }
func (v Version) Major() uint64 { return v.major }
func (v Version) Minor() uint64 { return v.minor }
func (v Version) Patch() uint64 { return v.patch }
func (v Version) Text() string  { return v.text }

// IsNightlyTag reports whether s contains any of the tokens this build
// recognizes as marking a development/nightly release.
func IsNightlyTag(s string) bool {
	s = strings.ToLower(s)
	for _, tok := range nightlyTokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// BypassedSentinelPOSIX is the install path Bypassed resolves to on POSIX.
const BypassedSentinelPOSIX = "/dev/null"

// BypassedSentinelWindows is the install path Bypassed resolves to on
// Windows — a path that can never be a real installation directory.
const BypassedSentinelWindows = `\\.\NUL\pactup-system-version-is-not-installed`

// Parse is total over non-empty strings; its only error condition is a
// leading-digit input whose dotted numeric form still fails to parse.
func Parse(raw string) (Version, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return Version{}, xerrors.New("version string is empty")
	}

	switch s {
	case "system":
		return Bypassed, nil
	case "latest":
		return Latest, nil
	}

	if IsNightlyTag(s) {
		return Nightly(s), nil
	}

	trimmed := strings.TrimPrefix(s, "v")
	if len(trimmed) > 0 && trimmed[0] >= '0' && trimmed[0] <= '9' {
		return parseSemver(trimmed)
	}

	return Alias(s), nil
}

func parseSemver(s string) (Version, error) {
	parts := strings.SplitN(s, ".", 3)
	nums := make([]uint64, 3)
	for i := 0; i < 3; i++ {
		if i >= len(parts) || parts[i] == "" {
			nums[i] = 0
			continue
		}
		n, err := strconv.ParseUint(parts[i], 10, 64)
		if err != nil {
			return Version{}, xerrors.Errorf("invalid semantic version %q: %w", s, err)
		}
		nums[i] = n
	}
	return Semver(nums[0], nums[1], nums[2]), nil
}

// Display renders the canonical string form, which Parse round-trips.
func (v Version) Display() string {
	switch v.kind {
	case KindSemver:
		return fmt.Sprintf("v%d.%d.%d", v.major, v.minor, v.patch)
	case KindLatest:
		return "latest"
	case KindBypassed:
		return "system"
	default:
		return v.text
	}
}

func (v Version) String() string { return v.Display() }

// kindOrder gives the stable (if otherwise unspecified) ordering between
// variants required by spec.md §3.
func kindOrder(k Kind) int {
	switch k {
	case KindBypassed:
		return 0
	case KindAlias:
		return 1
	case KindNightly:
		return 2
	case KindSemver:
		return 3
	case KindLatest:
		return 4
	default:
		return -1
	}
}

// Compare implements the total order over Version: Semver variants
// compare numerically, all non-Semver variants compare equal within
// variant by string, and across variants the order is the stable one
// fixed by kindOrder.
func Compare(a, b Version) int {
	if a.kind != b.kind {
		return kindOrder(a.kind) - kindOrder(b.kind)
	}
	switch a.kind {
	case KindSemver:
		if a.major != b.major {
			return cmpUint(a.major, b.major)
		}
		if a.minor != b.minor {
			return cmpUint(a.minor, b.minor)
		}
		return cmpUint(a.patch, b.patch)
	default:
		return strings.Compare(a.text, b.text)
	}
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports a < b under Compare.
func Less(a, b Version) bool { return Compare(a, b) < 0 }

// Equal reports a == b under Compare.
func Equal(a, b Version) bool { return Compare(a, b) == 0 }

// Max returns the maximum of vs under Compare, or the zero Version and
// false if vs is empty.
func Max(vs []Version) (Version, bool) {
	if len(vs) == 0 {
		return Version{}, false
	}
	best := vs[0]
	for _, v := range vs[1:] {
		if Less(best, v) {
			best = v
		}
	}
	return best, true
}

// AsSemver exposes *semver.Version for variants that are Semver, for
// callers (UserVersion ranges) that need Masterminds's
// comparison/constraint machinery directly.
func (v Version) AsSemver() (*semver.Version, bool) {
	if v.kind != KindSemver {
		return nil, false
	}
	sv, err := semver.NewVersion(fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch))
	if err != nil {
		return nil, false
	}
	return sv, true
}
