// Package shellbind implements the per-shell active-version indirection
// (spec.md §4.10): a process-scoped symlink whose target is repointed by
// `use`, so a shell's PATH (composed once, through this link) switches
// versions without being rewritten.
package shellbind

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/xerrors"

	"github.com/kadena-community/pactup/internal/layout"
)

// Binder creates and repoints one shell's symlink under the transient
// multishell root.
type Binder struct{}

// lastIssued is the path NewPath most recently returned, so that two
// calls from one process within the same millisecond do not hand out the
// same name.
var lastIssued string

// NewPath allocates a unique per-invocation path under the multishell
// root, retrying on name collision (spec.md: "{pid}_{monotonic-millis}
// (collision-retry)").
func (Binder) NewPath() (string, error) {
	root, err := layout.MultishellRoot()
	if err != nil {
		return "", err
	}

	for attempt := 0; attempt < 10; attempt++ {
		name := fmt.Sprintf("%d_%d", os.Getpid(), time.Now().UnixMilli())
		path := filepath.Join(root, name)
		if _, err := os.Lstat(path); os.IsNotExist(err) && path != lastIssued {
			lastIssued = path
			return path, nil
		}
		time.Sleep(time.Millisecond)
	}
	return "", xerrors.New("could not allocate a unique multishell path after 10 attempts")
}

// CreatePointingAt creates the symlink at path pointing at target — used
// both for the initial "Unset -> PointsToDefault" transition on `env`
// and to materialize the state the diagram in spec.md §4.10 describes.
func (Binder) CreatePointingAt(path, target string) error {
	if err := os.Symlink(target, path); err != nil {
		return xerrors.Errorf("creating multishell symlink %s -> %s: %w", path, target, err)
	}
	return nil
}

// Repoint is the single-writer rewrite a `use <v>` invocation performs:
// atomically retarget path to point at a new installation directory
// (spec.md §4.10's "PointsToDefault/PointsToVersion(a) -> PointsToVersion(b)").
func (Binder) Repoint(path, target string) error {
	dir := filepath.Dir(path)
	tmp, err := os.MkdirTemp(dir, ".shellbind-*")
	if err != nil {
		return xerrors.Errorf("staging multishell symlink update: %w", err)
	}
	defer os.RemoveAll(tmp)

	tmpLink := filepath.Join(tmp, "link")
	if err := os.Symlink(target, tmpLink); err != nil {
		return xerrors.Errorf("creating replacement symlink: %w", err)
	}
	if err := os.Rename(tmpLink, path); err != nil {
		return xerrors.Errorf("publishing repointed symlink %s: %w", path, err)
	}
	return nil
}

// Resolve follows path (and, if it points at the default alias rather
// than directly at a version, follows that too) to the installation
// directory it currently names (spec.md I3).
func Resolve(path string) (string, error) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", xerrors.Errorf("resolving multishell symlink %s: %w", path, err)
	}
	return target, nil
}

// Remove deletes the per-shell symlink. Best-effort: a missing link is
// not an error, matching the "Any state -> Removed" transition being
// best-effort cleanup (spec.md §4.10, §5).
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return xerrors.Errorf("removing multishell symlink %s: %w", path, err)
	}
	return nil
}
