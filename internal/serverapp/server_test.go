package serverapp

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KIM3310/kbbq-idle/internal/config"
)

func newHandlerForTest(t *testing.T, opts Options) http.Handler {
	t.Helper()
	if opts.DataDir == "" {
		opts.DataDir = t.TempDir()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	opts.Balance = config.Default()
	h, _, err := NewHandler(opts)
	require.NoError(t, err)
	return h
}

func TestNewHandler_HealthAndReady(t *testing.T) {
	h := newHandlerForTest(t, Options{Seed: 1})
	srv := httptest.NewServer(h)
	defer srv.Close()

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.NotEmpty(t, resp.Header.Get("X-Request-Id"), path)

		var body struct {
			OK      bool   `json:"ok"`
			Service string `json:"service"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.True(t, body.OK)
		assert.Equal(t, "kbbq-idle", body.Service)
	}
}

func TestNewHandler_ServesAPISurface(t *testing.T) {
	h := newHandlerForTest(t, Options{Seed: 1})
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var snap struct {
		State string `json:"state"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "tutorial", snap.State, "fresh save starts in the tutorial")
}

func TestNewHandler_SQLiteStore(t *testing.T) {
	h := newHandlerForTest(t, Options{Seed: 1, Store: "sqlite"})
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/save", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
