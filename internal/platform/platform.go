// Package platform detects the host OS and CPU family and exposes the
// string aliases the asset matcher uses to recognize them in release
// filenames.
package platform

import (
	"runtime"
	"strings"
)

// OS is one of the operating systems pactup installs releases for.
type OS int

const (
	Linux OS = iota
	MacOS
	Windows
)

// Arch is one of the CPU families pactup installs releases for.
type Arch int

const (
	X86 Arch = iota
	X64
	Arm64
	Armv7l
	Ppc64
	Ppc64le
	S390x
)

// Platform is the (OS, Arch) pair used for asset matching.
type Platform struct {
	OS   OS
	Arch Arch
}

// osAliases maps each OS to the filename tokens releases use for it.
var osAliases = map[OS][]string{
	Linux:   {"linux", "ubuntu"},
	MacOS:   {"darwin", "macos", "osx"},
	Windows: {"windows", "win"},
}

// archAliases maps each Arch to the filename tokens releases use for it.
var archAliases = map[Arch][]string{
	X86:     {"x86", "i386", "i686"},
	X64:     {"x64", "x86_64", "amd64"},
	Arm64:   {"arm64", "aarch64"},
	Armv7l:  {"armv7l", "armv7", "arm"},
	Ppc64:   {"ppc64"},
	Ppc64le: {"ppc64le"},
	S390x:   {"s390x"},
}

// Aliases returns the filename tokens that identify this OS.
func (o OS) Aliases() []string { return osAliases[o] }

// Aliases returns the filename tokens that identify this Arch.
func (a Arch) Aliases() []string { return archAliases[a] }

func (o OS) String() string {
	if a := osAliases[o]; len(a) > 0 {
		return a[0]
	}
	return "unknown"
}

func (a Arch) String() string {
	if al := archAliases[a]; len(al) > 0 {
		return al[0]
	}
	return "unknown"
}

// IsDefault64Bit reports whether arch is the platform's implicit 64-bit
// default — the arch AssetMatcher falls back to when a release asset's
// filename carries no arch token at all.
func (a Arch) IsDefault64Bit() bool { return a == X64 }

// Detect reports the current host platform, honoring a PACTUP_ARCH
// override for the arch component.
func Detect(archOverride string) (Platform, error) {
	p := Platform{}

	switch runtime.GOOS {
	case "linux":
		p.OS = Linux
	case "darwin":
		p.OS = MacOS
	case "windows":
		p.OS = Windows
	default:
		return Platform{}, &UnsupportedOSError{GOOS: runtime.GOOS}
	}

	goarch := runtime.GOARCH
	if archOverride != "" {
		goarch = archOverride
	}

	arch, err := archFromGOARCH(goarch)
	if err != nil {
		return Platform{}, err
	}
	p.Arch = arch

	return p, nil
}

func archFromGOARCH(goarch string) (Arch, error) {
	switch strings.ToLower(goarch) {
	case "386":
		return X86, nil
	case "amd64", "x86_64", "x64":
		return X64, nil
	case "arm64", "aarch64":
		return Arm64, nil
	case "arm", "armv7l", "armv7":
		return Armv7l, nil
	case "ppc64":
		return Ppc64, nil
	case "ppc64le":
		return Ppc64le, nil
	case "s390x":
		return S390x, nil
	default:
		return 0, &UnsupportedArchError{GOARCH: goarch}
	}
}

// UnsupportedOSError is returned when the host OS has no known aliases.
type UnsupportedOSError struct{ GOOS string }

func (e *UnsupportedOSError) Error() string { return "unsupported operating system: " + e.GOOS }

// UnsupportedArchError is returned when the host arch has no known aliases.
type UnsupportedArchError struct{ GOARCH string }

func (e *UnsupportedArchError) Error() string { return "unsupported architecture: " + e.GOARCH }
