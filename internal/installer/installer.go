// Package installer orchestrates download -> extract -> normalize ->
// publish (spec.md §4.7), the end-to-end path from a resolved Release
// asset to a materialized installation on disk.
package installer

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/briandowns/spinner"
	"github.com/hashicorp/go-getter"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/kadena-community/pactup/internal/alias"
	"github.com/kadena-community/pactup/internal/archive"
	"github.com/kadena-community/pactup/internal/layout"
	"github.com/kadena-community/pactup/internal/portal"
	"github.com/kadena-community/pactup/internal/version"
)

// AlreadyInstalledError is the idempotency signal of spec.md §7.6: the
// process should exit 0 with a warning, not an error, unless --force.
type AlreadyInstalledError struct{ Target string }

func (e *AlreadyInstalledError) Error() string { return "version already installed at " + e.Target }

// NotFoundError covers a 404 on the asset download URL.
type NotFoundError struct {
	Display string
	Arch    string
}

func (e *NotFoundError) Error() string {
	return "no downloadable asset found for " + e.Display + " on " + e.Arch
}

// HTTPError covers any other non-2xx on the download.
type HTTPError struct {
	Status int
	URL    string
}

func (e *HTTPError) Error() string {
	return xerrors.Errorf("http %d downloading %s", e.Status, e.URL).Error()
}

// Options are the Installer's per-call inputs (spec.md §4.7).
type Options struct {
	Version       version.Version
	DownloadURL   string
	AssetFileName string // picks the archive.Kind by suffix; also names the download file
	Force         bool
	ShowProgress  bool
	// InferredAlias, if set, is pinned to the new installation in
	// addition to "default" (spec.md §4.2 UserVersion.InferredAlias).
	InferredAlias version.Version
	HasInferred   bool
}

// Installer ties together Layout, Portal, archive.Extract and the
// Aliases store to implement the 12 steps of spec.md §4.7.
type Installer struct {
	Layout     layout.Layout
	HTTPClient *http.Client
	Log        *logrus.Logger
}

// New builds an Installer with sane defaults.
func New(l layout.Layout, log *logrus.Logger) *Installer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Installer{
		Layout:     l,
		HTTPClient: &http.Client{Timeout: 10 * time.Minute},
		Log:        log,
	}
}

// Install runs the full pipeline and returns the installation directory.
func (in *Installer) Install(ctx context.Context, opts Options) (string, error) {
	// Step 1.
	target, err := in.Layout.InstallationDir(opts.Version.Display())
	if err != nil {
		return "", err
	}

	// Steps 2-3.
	if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
		if !opts.Force {
			return "", &AlreadyInstalledError{Target: target}
		}
		if err := os.RemoveAll(target); err != nil {
			return "", xerrors.Errorf("removing existing installation %s for --force: %w", target, err)
		}
	}

	// Step 4.
	stagingRoot, err := in.Layout.DownloadsDir()
	if err != nil {
		return "", err
	}

	// Step 5.
	p, err := portal.NewIn(stagingRoot, target)
	if err != nil {
		return "", err
	}
	defer p.Close()

	// Steps 6-7: download to a temp file under the portal's own staging
	// root (not inside StagingDir, which becomes the published tree) so
	// the archive file itself is never teleported.
	archiveFile, err := in.download(ctx, opts, stagingRoot)
	if err != nil {
		return "", err
	}
	defer os.Remove(archiveFile)

	kind, err := archive.DetectKind(opts.AssetFileName)
	if err != nil {
		return "", err
	}

	// Step 8.
	if err := archive.Extract(kind, archiveFile, p.StagingDir()); err != nil {
		return "", err
	}
	if err := archive.NormalizePermissions(p.StagingDir()); err != nil {
		return "", xerrors.Errorf("normalizing permissions: %w", err)
	}

	// Steps 9-10: Portal.Teleport runs the layout-normalization hook,
	// then atomically renames staging onto target.
	published, err := p.Teleport(normalizeLayout)
	if err != nil {
		return "", err
	}

	// Step 11-12: best-effort; a failure here leaves the version
	// installed but possibly without default/inferred alias, which
	// spec.md §4.7 explicitly allows as safe and re-runnable.
	aliases := alias.Store{Layout: in.Layout}
	if _, err := aliases.Resolve("default"); err != nil {
		if err := aliases.Create("default", published); err != nil {
			in.Log.WithError(err).Warn("could not pin default alias")
		}
	}
	if opts.HasInferred {
		name, ok := inferredAliasName(opts.InferredAlias)
		if ok {
			if err := aliases.Create(name, published); err != nil {
				in.Log.WithError(err).Warn("could not pin inferred alias")
			}
		}
	}

	return published, nil
}

func inferredAliasName(v version.Version) (string, bool) {
	switch v.Kind() {
	case version.KindLatest:
		return "latest", true
	case version.KindNightly:
		return v.Text(), true
	default:
		return "", false
	}
}

func (in *Installer) download(ctx context.Context, opts Options, stagingRoot string) (string, error) {
	dest := filepath.Join(stagingRoot, "download-"+opts.Version.Display()+"-"+filepath.Base(opts.AssetFileName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.DownloadURL, nil)
	if err != nil {
		return "", xerrors.Errorf("building download request: %w", err)
	}

	resp, err := in.HTTPClient.Do(req)
	if err != nil {
		if req.URL.Scheme == "http" || req.URL.Scheme == "https" {
			return "", xerrors.Errorf("downloading %s: %w", opts.DownloadURL, err)
		}
		// Fall back to go-getter's own transport for non-http(s)
		// sources (file://, git::, etc.) it additionally understands.
		if getErr := getter.GetFile(dest, opts.DownloadURL); getErr != nil {
			return "", xerrors.Errorf("downloading %s: %w", opts.DownloadURL, err)
		}
		return dest, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", &NotFoundError{Display: opts.Version.Display(), Arch: opts.AssetFileName}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &HTTPError{Status: resp.StatusCode, URL: opts.DownloadURL}
	}

	out, err := os.Create(dest)
	if err != nil {
		return "", xerrors.Errorf("creating download destination %s: %w", dest, err)
	}
	defer out.Close()

	var reader io.Reader = resp.Body
	var sp *spinner.Spinner
	if opts.ShowProgress {
		sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		sp.Suffix = " downloading " + filepath.Base(opts.AssetFileName)
		sp.Start()
		defer sp.Stop()
	}

	if _, err := io.Copy(out, reader); err != nil {
		return "", xerrors.Errorf("streaming download body: %w", err)
	}

	return dest, nil
}

// normalizeLayout is the Portal normalization hook (spec.md §4.7 step
// 9): locate the tool binary anywhere under the staged tree, move it to
// bin/{tool}, and make it executable.
func normalizeLayout(stagingDir string) error {
	want := layout.ToolName()
	if runtime.GOOS == "windows" {
		want += ".exe"
	}

	var found string
	err := filepath.Walk(stagingDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if found != "" || info.IsDir() {
			return nil
		}
		if info.Name() == want {
			found = path
		}
		return nil
	})
	if err != nil {
		return xerrors.Errorf("searching staged tree for %s: %w", want, err)
	}
	if found == "" {
		return xerrors.Errorf("no %s binary found anywhere under staged install", want)
	}

	canonical := layout.BinPath(stagingDir)
	if found == canonical {
		return os.Chmod(canonical, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(canonical), 0o755); err != nil {
		return xerrors.Errorf("creating bin dir: %w", err)
	}
	if err := os.Rename(found, canonical); err != nil {
		return xerrors.Errorf("moving %s to %s: %w", found, canonical, err)
	}
	return os.Chmod(canonical, 0o755)
}

