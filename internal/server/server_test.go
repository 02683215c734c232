package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redditdevs/VerifyBot_Go/internal/store"
)

func TestNewServer_PublicEndpoints(t *testing.T) {
	recordStore, err := store.OpenInMemory()
	require.NoError(t, err)
	defer recordStore.Close()

	srv := NewServer(0, "secret-key", nil, recordStore, nil)
	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	for _, path := range []string{"/healthz", "/readyz", "/metrics", "/version"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, "path %s", path)
	}
}

func TestNewServer_SwaggerServedWithoutKey(t *testing.T) {
	recordStore, err := store.OpenInMemory()
	require.NoError(t, err)
	defer recordStore.Close()

	srv := NewServer(0, "secret-key", nil, recordStore, nil)
	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/swagger/index.html")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEqual(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNewServer_APIRequiresKey(t *testing.T) {
	recordStore, err := store.OpenInMemory()
	require.NoError(t, err)
	defer recordStore.Close()

	srv := NewServer(0, "secret-key", nil, recordStore, nil)
	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/verification/status?user_id=t2_user1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
