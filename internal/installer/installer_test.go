package installer

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadena-community/pactup/internal/layout"
	"github.com/kadena-community/pactup/internal/version"
)

func buildTarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		hdr := &tar.Header{Name: name, Mode: 0o755, Size: int64(len(content))}
		require.NoError(t, tw.WriteHeader(hdr))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestInstallPublishesAndPinsDefaultAlias(t *testing.T) {
	body := buildTarGz(t, map[string]string{"bin/pact": "#!/bin/sh\necho pact"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	tmp := t.TempDir()
	l, err := layout.Resolve(tmp)
	require.NoError(t, err)

	in := New(l, logrus.New())
	v := version.Semver(4, 13, 0)

	published, err := in.Install(context.Background(), Options{
		Version:       v,
		DownloadURL:   srv.URL + "/pact-4.13.0-linux-x64.tar.gz",
		AssetFileName: "pact-4.13.0-linux-x64.tar.gz",
	})
	require.NoError(t, err)

	assert.True(t, layout.IsCompleteInstallation(published))

	aliasPath, err := l.AliasPath("default")
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(aliasPath)
	require.NoError(t, err)
	assert.Equal(t, published, resolved)
}

func TestInstallTwiceWithoutForceFails(t *testing.T) {
	body := buildTarGz(t, map[string]string{"bin/pact": "x"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	tmp := t.TempDir()
	l, err := layout.Resolve(tmp)
	require.NoError(t, err)
	in := New(l, logrus.New())
	v := version.Semver(4, 13, 0)
	opts := Options{Version: v, DownloadURL: srv.URL + "/a.tar.gz", AssetFileName: "a.tar.gz"}

	_, err = in.Install(context.Background(), opts)
	require.NoError(t, err)

	_, err = in.Install(context.Background(), opts)
	require.Error(t, err)
	var aie *AlreadyInstalledError
	assert.ErrorAs(t, err, &aie)
}

func TestInstallForceReplaces(t *testing.T) {
	body := buildTarGz(t, map[string]string{"bin/pact": "x"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	tmp := t.TempDir()
	l, err := layout.Resolve(tmp)
	require.NoError(t, err)
	in := New(l, logrus.New())
	v := version.Semver(4, 13, 0)
	opts := Options{Version: v, DownloadURL: srv.URL + "/a.tar.gz", AssetFileName: "a.tar.gz"}

	_, err = in.Install(context.Background(), opts)
	require.NoError(t, err)

	opts.Force = true
	published, err := in.Install(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, layout.IsCompleteInstallation(published))
}

func TestInstall404IsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	tmp := t.TempDir()
	l, err := layout.Resolve(tmp)
	require.NoError(t, err)
	in := New(l, logrus.New())

	_, err = in.Install(context.Background(), Options{
		Version:       version.Semver(4, 13, 0),
		DownloadURL:   srv.URL + "/missing.tar.gz",
		AssetFileName: "missing.tar.gz",
	})
	require.Error(t, err)
	var nfe *NotFoundError
	assert.ErrorAs(t, err, &nfe)

	_, statErr := os.Stat(filepath.Join(tmp, "pact-versions", "v4.13.0"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestInstallPinsInferredAlias(t *testing.T) {
	body := buildTarGz(t, map[string]string{"bin/pact": "x"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	tmp := t.TempDir()
	l, err := layout.Resolve(tmp)
	require.NoError(t, err)
	in := New(l, logrus.New())

	published, err := in.Install(context.Background(), Options{
		Version:       version.Semver(4, 13, 0),
		DownloadURL:   srv.URL + "/a.tar.gz",
		AssetFileName: "a.tar.gz",
		InferredAlias: version.Latest,
		HasInferred:   true,
	})
	require.NoError(t, err)

	aliasPath, err := l.AliasPath("latest")
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(aliasPath)
	require.NoError(t, err)
	assert.Equal(t, published, resolved)
}
