// Package layout resolves the on-disk paths pactup uses (spec.md §3
// "Filesystem layout", §4.5). Every accessor that names a directory
// ensures it exists before returning it, except InstallationDir, whose
// per-version directory only the Installer creates.
package layout

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"golang.org/x/xerrors"
)

const toolName = "pact"
const programName = "pactup"

// Layout is a pure set of path helpers rooted at a base directory.
type Layout struct {
	base string
}

// Resolve picks the base directory in the order spec.md §4.5 fixes:
// (a) explicit override, (b) a legacy dotfile dir under home if present,
// (c) the XDG data dir joined with the program name.
func Resolve(override string) (Layout, error) {
	if override != "" {
		return Layout{base: override}, nil
	}

	home, err := os.UserHomeDir()
	if err == nil {
		legacy := filepath.Join(home, "."+programName)
		if info, statErr := os.Stat(legacy); statErr == nil && info.IsDir() {
			return Layout{base: legacy}, nil
		}
	}

	dataDir, err := xdg.DataFile(programName + "/placeholder")
	if err != nil {
		return Layout{}, xerrors.Errorf("resolving xdg data dir: %w", err)
	}
	return Layout{base: filepath.Dir(dataDir)}, nil
}

func ensureDir(p string) (string, error) {
	if err := os.MkdirAll(p, 0o755); err != nil {
		return "", xerrors.Errorf("creating directory %s: %w", p, err)
	}
	return p, nil
}

// Base returns the base directory, creating it if missing.
func (l Layout) Base() (string, error) { return ensureDir(l.base) }

// InstallationsDir is $BASE/pact-versions.
func (l Layout) InstallationsDir() (string, error) {
	return ensureDir(filepath.Join(l.base, "pact-versions"))
}

// InstallationDir is $BASE/pact-versions/{display}, the directory for
// one installed version. It is not created here — only the Installer
// (via Portal) creates version directories, per spec.md's lifecycle note.
func (l Layout) InstallationDir(display string) (string, error) {
	dir, err := l.InstallationsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, display), nil
}

// DownloadsDir is $BASE/pact-versions/.downloads, the Portal staging root.
func (l Layout) DownloadsDir() (string, error) {
	dir, err := l.InstallationsDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(dir, ".downloads"))
}

// AliasesDir is $BASE/aliases.
func (l Layout) AliasesDir() (string, error) {
	return ensureDir(filepath.Join(l.base, "aliases"))
}

// AliasPath is $BASE/aliases/{name}.
func (l Layout) AliasPath(name string) (string, error) {
	dir, err := l.AliasesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// BinPath is the path to the tool binary inside an installation
// directory: bin/{tool} on POSIX, the directory root on Windows.
func BinPath(installDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(installDir, toolName+".exe")
	}
	return filepath.Join(installDir, "bin", toolName)
}

// MultishellRoot is the OS-dependent transient root for per-shell
// symlinks (spec.md §3 "Per-shell directory").
func MultishellRoot() (string, error) {
	var root string
	if runtime.GOOS == "windows" {
		root = filepath.Join(os.TempDir(), programName+"_multishell")
	} else {
		root = filepath.Join(os.TempDir(), programName+"_multishell")
	}
	return ensureDir(root)
}

// IsCompleteInstallation reports I1: the directory has the tool binary
// at the canonical location.
func IsCompleteInstallation(installDir string) bool {
	info, err := os.Stat(BinPath(installDir))
	return err == nil && !info.IsDir()
}

// ToolName is the target binary's name ("pact").
func ToolName() string { return toolName }
