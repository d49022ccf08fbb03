// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package download

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("a,b\n1,2\n"))
	}))
	defer srv.Close()

	cache := filepath.Join(t.TempDir(), "data.csv")
	p, err := File(srv.URL, cache, time.Second, false, nil)
	require.NoError(t, err)
	assert.Equal(t, cache, p)

	b, err := os.ReadFile(cache)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(b))
}

func TestFile_FallsBackToCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cache := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(cache, []byte("cached"), 0644))

	p, err := File(srv.URL, cache, time.Second, false, nil)
	require.NoError(t, err)
	assert.Equal(t, cache, p)

	// The failed download must not clobber the cache.
	b, err := os.ReadFile(cache)
	require.NoError(t, err)
	assert.Equal(t, "cached", string(b))
}

func TestFile_TruncatedBody(t *testing.T) {
	// The server promises more bytes than it sends, so the copy fails
	// partway through the body.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100")
		w.Write([]byte("parti"))
	}))
	defer srv.Close()

	cache := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(cache, []byte("good cached data"), 0644))

	p, err := File(srv.URL, cache, time.Second, false, nil)
	require.NoError(t, err)
	assert.Equal(t, cache, p)

	// The partial download must not replace the good cache.
	b, err := os.ReadFile(cache)
	require.NoError(t, err)
	assert.Equal(t, "good cached data", string(b))
}

func TestFile_Offline(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(cache, []byte("cached"), 0644))

	p, err := File("http://example.invalid/data.csv", cache, time.Second, true, nil)
	require.NoError(t, err)
	assert.Equal(t, cache, p)
}

func TestFile_NothingAvailable(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "data.csv")
	const url = "http://example.invalid/data.csv"
	_, err := File(url, cache, time.Second, true, nil)
	require.Error(t, err)
	// The error should tell the user where to get the file manually.
	assert.Contains(t, err.Error(), url)
}
