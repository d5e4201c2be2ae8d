// Package catalog is the HTTP adapter to the upstream code-forge release
// index: it lists, finds the latest, and looks up releases by tag across
// an ordered set of repositories (spec.md §4.3).
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/github"
	"golang.org/x/xerrors"

	"github.com/kadena-community/pactup/internal/version"
)

// Repo identifies one upstream repository to query, in the order the
// caller wants it consulted (spec.md: "PACTUP_PACT4X_REPO" /
// "PACTUP_PACT5X_REPO" feed this in order).
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string { return r.Owner + "/" + r.Name }

// Asset is one downloadable file attached to a Release.
type Asset struct {
	Name        string
	DownloadURL string
}

// Release is a named upstream artifact set.
type Release struct {
	Tag        version.Version
	RawTag     string
	Prerelease bool
	Draft      bool
	Assets     []Asset
	Repo       Repo
}

// HTTPError is returned when the upstream responds with a non-2xx
// status. On 403 with a rate-limit reset present, Message carries the
// advisory reset time (spec.md §4.3) — pactup never retries on it.
type HTTPError struct {
	Status  int
	URL     string
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d fetching %s: %s", e.Status, e.URL, e.Message)
	}
	return fmt.Sprintf("http %d fetching %s", e.Status, e.URL)
}

// DecodeError is returned when the release list body fails to parse as
// JSON; Excerpt carries the offending text for diagnosability.
type DecodeError struct {
	URL     string
	Excerpt string
	Cause   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode releases from %s: %v (near: %q)", e.URL, e.Cause, e.Excerpt)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// Client is the Catalog adapter.
type Client struct {
	gh         *github.Client
	httpClient *http.Client
}

// New builds a Client. httpClient may be nil to use a default client
// with a reasonable connect/read timeout (spec.md §5, "Timeouts").
func New(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{gh: github.NewClient(httpClient), httpClient: httpClient}
}

type rawRelease struct {
	TagName    string      `json:"tag_name"`
	Tag        string      `json:"tag"`
	Prerelease bool        `json:"prerelease"`
	Draft      bool        `json:"draft"`
	Assets     []rawAsset  `json:"assets"`
}

type rawAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// fetchOne GETs the releases endpoint for a single repo and decodes it,
// preserving the upstream provenance order (spec.md §3 "Release" invariant).
func (c *Client) fetchOne(ctx context.Context, repo Repo) ([]Release, error) {
	reqURL := fmt.Sprintf("repos/%s/%s/releases", repo.Owner, repo.Name)
	req, err := c.gh.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, xerrors.Errorf("building request for %s: %w", repo, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, xerrors.Errorf("fetching releases for %s: %w", repo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := ""
		if resp.StatusCode == http.StatusForbidden {
			if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
				msg = "rate limited, resets at unix time " + reset
			}
		}
		return nil, &HTTPError{Status: resp.StatusCode, URL: req.URL.String(), Message: msg}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, xerrors.Errorf("reading response body for %s: %w", repo, err)
	}

	var raws []rawRelease
	if err := json.Unmarshal(body, &raws); err != nil {
		excerpt := string(body)
		if len(excerpt) > 200 {
			excerpt = excerpt[:200]
		}
		return nil, &DecodeError{URL: req.URL.String(), Excerpt: excerpt, Cause: err}
	}

	releases := make([]Release, 0, len(raws))
	for _, rr := range raws {
		tagStr := rr.TagName
		if tagStr == "" {
			tagStr = rr.Tag
		}
		tag, err := version.Parse(tagStr)
		if err != nil {
			continue
		}
		assets := make([]Asset, 0, len(rr.Assets))
		for _, a := range rr.Assets {
			assets = append(assets, Asset{Name: a.Name, DownloadURL: a.BrowserDownloadURL})
		}
		releases = append(releases, Release{
			Tag:        tag,
			RawTag:     tagStr,
			Prerelease: rr.Prerelease || version.IsNightlyTag(tagStr),
			Draft:      rr.Draft,
			Assets:     assets,
			Repo:       repo,
		})
	}
	return releases, nil
}

// List concatenates every repo's releases, in caller order.
func (c *Client) List(ctx context.Context, repos []Repo) ([]Release, error) {
	var all []Release
	for _, r := range repos {
		rs, err := c.fetchOne(ctx, r)
		if err != nil {
			return nil, err
		}
		all = append(all, rs...)
	}
	return all, nil
}

// Latest queries every repo, filters out nightly/prerelease releases,
// and returns the release with the greatest tag under Version order
// (spec.md §4.3; this spec's explicit max-by-tag semantics, not the
// source's buggy first-of-list behavior).
func (c *Client) Latest(ctx context.Context, repos []Repo) (Release, error) {
	all, err := c.List(ctx, repos)
	if err != nil {
		return Release{}, err
	}

	var candidates []Release
	for _, r := range all {
		if r.Prerelease || r.Draft {
			continue
		}
		if r.Tag.Kind() != version.KindSemver {
			continue
		}
		candidates = append(candidates, r)
	}
	if len(candidates) == 0 {
		return Release{}, xerrors.New("no non-prerelease releases found")
	}

	best := candidates[0]
	for _, r := range candidates[1:] {
		if version.Less(best.Tag, r.Tag) {
			best = r
		}
	}
	return best, nil
}

// GetByTag returns the first repo's release matching tag exactly.
func (c *Client) GetByTag(ctx context.Context, repos []Repo, tag string) (Release, error) {
	want, err := version.Parse(tag)
	if err != nil {
		return Release{}, xerrors.Errorf("invalid tag %q: %w", tag, err)
	}

	for _, repo := range repos {
		rs, err := c.fetchOne(ctx, repo)
		if err != nil {
			return Release{}, err
		}
		for _, r := range rs {
			if version.Equal(r.Tag, want) || strings.EqualFold(r.RawTag, tag) {
				return r, nil
			}
		}
	}
	return Release{}, xerrors.Errorf("no release found for tag %q", tag)
}
