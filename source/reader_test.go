package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lmlerrors "github.com/linkml-go/linkml/errors"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, RefURL, Classify("https://example.org/schema.yaml"))
	assert.Equal(t, RefAbsolutePath, Classify("/r/a/schema.yaml"))
	assert.Equal(t, RefRelativePath, Classify("a/b/schema.yaml"))
	assert.Equal(t, RefPrefixedID, Classify("proj:a/b/schema"))
}

func TestReadFileAbsolute(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("id: x\nname: x\n"), 0o644))

	r := NewReader(Config{})
	b, err := r.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "name: x")
}

func TestReadFileSandboxRejectsEscape(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	outsideFile := filepath.Join(outside, "secret.yaml")
	require.NoError(t, os.WriteFile(outsideFile, []byte("id: x\nname: x\n"), 0o644))

	r := NewReader(Config{SandboxRoot: root})
	_, err := r.Read(context.Background(), outsideFile)
	require.Error(t, err)
	var lmlErr *lmlerrors.Error
	require.ErrorAs(t, err, &lmlErr)
	assert.Equal(t, lmlerrors.IoError, lmlErr.Kind)
}

func TestReadSearchPathsEarliestWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(second, "a.yaml"), []byte("id: second\nname: second\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(first, "a.yaml"), []byte("id: first\nname: first\n"), 0o644))

	r := NewReader(Config{SearchPaths: []string{first, second}})
	b, err := r.Read(context.Background(), "a.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(b), "name: first")
}

func TestReadPrefixedLocalFirst(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "a", "b", "schema.yaml"), []byte("id: x\nname: x\n"), 0o644))

	r := NewReader(Config{PrefixMap: map[string]string{"proj": base}})
	b, err := r.Read(context.Background(), "proj:a/b/schema.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(b), "name: x")
}

func TestFetchWithoutHTTPClientFails(t *testing.T) {
	r := NewReader(Config{})
	_, err := r.Read(context.Background(), "https://example.org/schema.yaml")
	require.Error(t, err)
	var lmlErr *lmlerrors.Error
	require.ErrorAs(t, err, &lmlErr)
	assert.Equal(t, lmlerrors.IoError, lmlErr.Kind)
}

func TestFetchSucceedsAndCaches(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits++
		assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
		w.Write([]byte("id: remote\nname: remote\n"))
	}))
	defer srv.Close()

	r := NewReader(Config{
		HTTPClient:  srv.Client(),
		AuthHeaders: map[string]string{srv.Listener.Addr().String(): "Bearer test-token"},
	})

	b, err := r.Read(context.Background(), srv.URL+"/schema.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(b), "name: remote")

	b2, err := r.Read(context.Background(), srv.URL+"/schema.yaml")
	require.NoError(t, err)
	assert.Equal(t, b, b2)
	assert.Equal(t, 1, hits, "second read should be served from cache, not a new request")
}

func TestFetchRetriesOnServerError(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits++
		if hits < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("id: retried\nname: retried\n"))
	}))
	defer srv.Close()

	r := NewReader(Config{HTTPClient: srv.Client(), RetryBackoff: 1})
	b, err := r.Read(context.Background(), srv.URL+"/schema.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(b), "name: retried")
	assert.Equal(t, 2, hits)
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := NewReader(Config{HTTPClient: srv.Client()})
	_, err := r.Read(context.Background(), srv.URL+"/missing.yaml")
	require.Error(t, err)
	var lmlErr *lmlerrors.Error
	require.ErrorAs(t, err, &lmlErr)
	assert.Equal(t, lmlerrors.NotFound, lmlErr.Kind)
	assert.Equal(t, http.StatusNotFound, lmlErr.HTTPStatus)
}
