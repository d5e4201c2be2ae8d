// Package archive implements the stream-extraction step of the install
// pipeline: tar.gz, tar.xz and zip, selected by URL/filename suffix
// (spec.md §4.8).
package archive

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jfrog/archiver/v3"
	"golang.org/x/xerrors"
)

// Kind is the small tagged value behind archive-kind dispatch (spec.md
// §9 "Dynamic dispatch over archive kind").
type Kind int

const (
	TarGz Kind = iota
	TarXz
	Zip
)

// DetectKind selects a Kind from a URL or filename suffix. It is a pure
// function; the only error is an unrecognized suffix.
func DetectKind(name string) (Kind, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz"):
		return TarGz, nil
	case strings.HasSuffix(lower, ".tar.xz"):
		return TarXz, nil
	case strings.HasSuffix(lower, ".zip"):
		return Zip, nil
	default:
		return 0, xerrors.Errorf("unknown archive type for %q", name)
	}
}

// unarchiver returns the archiver.Unarchiver for a Kind. archiver v3
// sanitizes entry paths against the destination root itself, which is
// this package's defense against the path-escape archive error spec.md
// §4.8 requires; overwrite is enabled so an entry replaces any file
// already at its path in the destination.
func unarchiver(k Kind) archiver.Unarchiver {
	switch k {
	case TarGz:
		tgz := archiver.NewTarGz()
		tgz.OverwriteExisting = true
		tgz.MkdirAll = true
		return tgz
	case TarXz:
		txz := archiver.NewTarXz()
		txz.OverwriteExisting = true
		txz.MkdirAll = true
		return txz
	case Zip:
		z := archiver.NewZip()
		z.OverwriteExisting = true
		z.MkdirAll = true
		return z
	default:
		return nil
	}
}

// Extract decompresses archivePath (a tar.gz/tar.xz/zip file already on
// disk — zip's central directory sits at the end of the file, so the
// caller is expected to have buffered the download to a temp file
// first, as spec.md §4.8 requires) into destDir.
func Extract(k Kind, archivePath, destDir string) error {
	u := unarchiver(k)
	if u == nil {
		return xerrors.Errorf("no extractor registered for archive kind %d", k)
	}
	if err := u.Unarchive(archivePath, destDir); err != nil {
		return xerrors.Errorf("extracting %s into %s: %w", archivePath, destDir, err)
	}
	return nil
}

// NormalizePermissions rewrites permissions under root after extraction
// (spec.md §4.7 step 8): directories 0755, files 0644, preserving the
// executable bit on files that had any execute bit set in the archive.
// It never fails on restrictive per-entry permissions the archive itself
// carried — those are simply overwritten.
func NormalizePermissions(root string) error {
	return filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return os.Chmod(path, 0o755)
		}
		mode := os.FileMode(0o644)
		if info.Mode()&0o111 != 0 {
			mode = 0o755
		}
		return os.Chmod(path, mode)
	})
}

func (k Kind) String() string {
	switch k {
	case TarGz:
		return "tar.gz"
	case TarXz:
		return "tar.xz"
	case Zip:
		return "zip"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}
