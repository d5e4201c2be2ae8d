package catalog

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	responses map[string]*http.Response
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for path, resp := range f.responses {
		if strings.Contains(req.URL.Path, path) {
			resp.Request = req
			return resp, nil
		}
	}
	return &http.Response{
		StatusCode: 404,
		Body:       http.NoBody,
		Header:     http.Header{},
		Request:    req,
	}, nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func newTestClient(responses map[string]*http.Response) *Client {
	hc := &http.Client{Transport: &fakeTransport{responses: responses}}
	return New(hc)
}

const sampleReleases = `[
  {"tag_name": "v4.10.0", "prerelease": false, "draft": false, "assets": [{"name": "pact-4.10.0-linux-x64.tar.gz", "browser_download_url": "https://example.com/4.10.0.tar.gz"}]},
  {"tag_name": "v4.13.0", "prerelease": false, "draft": false, "assets": [{"name": "pact-4.13.0-linux-x64.tar.gz", "browser_download_url": "https://example.com/4.13.0.tar.gz"}]},
  {"tag_name": "v4.12.0", "prerelease": false, "draft": false, "assets": []}
]`

func TestListConcatenatesInOrder(t *testing.T) {
	c := newTestClient(map[string]*http.Response{
		"/repos/kadena-io/pact/releases": jsonResponse(200, sampleReleases),
	})
	releases, err := c.List(context.Background(), []Repo{{Owner: "kadena-io", Name: "pact"}})
	require.NoError(t, err)
	assert.Len(t, releases, 3)
	assert.Equal(t, "v4.10.0", releases[0].RawTag)
}

func TestLatestPicksMaxByTag(t *testing.T) {
	c := newTestClient(map[string]*http.Response{
		"/repos/kadena-io/pact/releases": jsonResponse(200, sampleReleases),
	})
	r, err := c.Latest(context.Background(), []Repo{{Owner: "kadena-io", Name: "pact"}})
	require.NoError(t, err)
	assert.Equal(t, "v4.13.0", r.RawTag)
}

func TestGetByTagFindsExact(t *testing.T) {
	c := newTestClient(map[string]*http.Response{
		"/repos/kadena-io/pact/releases": jsonResponse(200, sampleReleases),
	})
	r, err := c.GetByTag(context.Background(), []Repo{{Owner: "kadena-io", Name: "pact"}}, "4.12.0")
	require.NoError(t, err)
	assert.Equal(t, "v4.12.0", r.RawTag)
}

func TestNon2xxIsHTTPError(t *testing.T) {
	resp := jsonResponse(403, `{}`)
	resp.Header.Set("X-RateLimit-Reset", "1700000000")
	c := newTestClient(map[string]*http.Response{
		"/repos/kadena-io/pact/releases": resp,
	})
	_, err := c.List(context.Background(), []Repo{{Owner: "kadena-io", Name: "pact"}})
	require.Error(t, err)
	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, 403, herr.Status)
	assert.Contains(t, herr.Message, "1700000000")
}

func TestMalformedJSONIsDecodeError(t *testing.T) {
	c := newTestClient(map[string]*http.Response{
		"/repos/kadena-io/pact/releases": jsonResponse(200, `not json`),
	})
	_, err := c.List(context.Background(), []Repo{{Owner: "kadena-io", Name: "pact"}})
	require.Error(t, err)
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Contains(t, derr.Excerpt, "not json")
}
