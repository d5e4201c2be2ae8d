// Package alias manages named symbolic links under $BASE/aliases that
// resolve to installation directories (spec.md §4.9).
package alias

import (
	"os"
	"path/filepath"

	"golang.org/x/xerrors"

	"github.com/kadena-community/pactup/internal/layout"
)

// Store operates on one base layout's aliases directory.
type Store struct {
	Layout layout.Layout
}

// Create atomically replaces aliases/{name} with a symlink to
// targetDir: create at a temp name, then rename over the target, so
// readers never observe a half-written link (spec.md §4.9).
func (s Store) Create(name, targetDir string) error {
	path, err := s.Layout.AliasPath(name)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.MkdirTemp(dir, ".alias-*")
	if err != nil {
		return xerrors.Errorf("staging alias %s: %w", name, err)
	}
	defer os.RemoveAll(tmp)

	tmpLink := filepath.Join(tmp, "link")
	if err := os.Symlink(targetDir, tmpLink); err != nil {
		return xerrors.Errorf("creating symlink for alias %s: %w", name, err)
	}

	if err := os.Rename(tmpLink, path); err != nil {
		return xerrors.Errorf("publishing alias %s: %w", name, err)
	}
	return nil
}

// Entry is one alias's resolved state.
type Entry struct {
	Name    string
	Target  string // resolved (canonical) target directory
	Version string // basename of Target, the installed version's display string
}

// List returns every alias under aliases/, each paired with the version
// display name derived from the symlink's canonical target's basename
// (spec.md §4.9).
func (s Store) List() ([]Entry, error) {
	dir, err := s.Layout.AliasesDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, xerrors.Errorf("listing aliases: %w", err)
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		path := filepath.Join(dir, name)
		target, err := filepath.EvalSymlinks(path)
		if err != nil {
			continue // broken symlink: not a valid alias entry, skip
		}
		out = append(out, Entry{Name: name, Target: target, Version: filepath.Base(target)})
	}
	return out, nil
}

// Resolve reads a single alias's target, without requiring it to exist
// in List's full scan.
func (s Store) Resolve(name string) (string, error) {
	path, err := s.Layout.AliasPath(name)
	if err != nil {
		return "", err
	}
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", xerrors.Errorf("resolving alias %s: %w", name, err)
	}
	return target, nil
}

// Delete unlinks aliases/{name}. A missing alias is not an error
// (unalias is idempotent, per spec.md's round-trip property).
func (s Store) Delete(name string) error {
	path, err := s.Layout.AliasPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return xerrors.Errorf("deleting alias %s: %w", name, err)
	}
	return nil
}
