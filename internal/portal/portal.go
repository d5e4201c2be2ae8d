// Package portal implements the stage-and-rename atomic directory
// installer (spec.md §4.6): a scoped staging directory that is renamed
// onto its target on success and reclaimed on any unwound failure path.
// This is the invariant enforcement point for I1 — no partially
// installed version is ever observable.
package portal

import (
	"os"
	"path/filepath"

	"golang.org/x/xerrors"
)

// NormalizeFunc prepares the staged tree for publication: ensuring
// bin/{tool} layout and the executable bit (spec.md §4.7 step 9).
type NormalizeFunc func(stagingDir string) error

// Portal is a scoped staging directory (spec.md "Scoped release of temp
// directory"): allocate on construction, guaranteed cleanup on all exit
// paths unless Teleport is called and succeeds.
type Portal struct {
	stagingDir string
	target     string
	published  bool
}

// NewIn allocates a fresh temp directory under stagingRoot. stagingRoot
// must be on the same filesystem as target for Teleport's rename to be
// atomic (spec.md §4.6).
func NewIn(stagingRoot, target string) (*Portal, error) {
	if err := os.MkdirAll(stagingRoot, 0o755); err != nil {
		return nil, xerrors.Errorf("creating staging root %s: %w", stagingRoot, err)
	}
	dir, err := os.MkdirTemp(stagingRoot, "portal-*")
	if err != nil {
		return nil, xerrors.Errorf("allocating staging directory under %s: %w", stagingRoot, err)
	}

	if ancestor, ok := existingAncestor(filepath.Dir(target)); ok {
		if same, err := sameFilesystem(dir, ancestor); err == nil && !same {
			os.RemoveAll(dir)
			return nil, xerrors.Errorf("staging root %s and target %s are on different filesystems; rename cannot be atomic", stagingRoot, target)
		}
	}

	return &Portal{stagingDir: dir, target: target}, nil
}

// existingAncestor walks up from path until it finds a directory that
// already exists, so the same-filesystem check works even before
// target's own parent has been created.
func existingAncestor(path string) (string, bool) {
	for {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path, true
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", false
		}
		path = parent
	}
}

// StagingDir is the path the caller populates before calling Teleport.
func (p *Portal) StagingDir() string { return p.stagingDir }

// Target is the eventual installation directory.
func (p *Portal) Target() string { return p.target }

// Teleport runs normalize over the staging tree, then atomically renames
// the staging directory over target. It is the single point where an
// install transitions from "not observable" to "observable" (I1, I4).
func (p *Portal) Teleport(normalize NormalizeFunc) (string, error) {
	if normalize != nil {
		if err := normalize(p.stagingDir); err != nil {
			return "", xerrors.Errorf("normalizing staged install: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(p.target), 0o755); err != nil {
		return "", xerrors.Errorf("creating parent of %s: %w", p.target, err)
	}

	if err := os.Rename(p.stagingDir, p.target); err != nil {
		return "", xerrors.Errorf("publishing %s to %s: %w", p.stagingDir, p.target, err)
	}

	p.published = true
	return p.target, nil
}

// Close reclaims the staging directory if Teleport was never called or
// failed. Safe to call unconditionally via defer.
func (p *Portal) Close() error {
	if p.published {
		return nil
	}
	return os.RemoveAll(p.stagingDir)
}
