package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopping-cart/internal/token"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelay_ForwardsCredential(t *testing.T) {
	var gotAuth, gotUserAgent, gotForwarded string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")
		gotForwarded = r.Header.Get("X-Forwarded-Service")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	httpClient := NewHTTPClient(5*time.Second, zerolog.Nop())

	ctx := token.WithToken(context.Background(), "abc123")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.Equal(t, "shopping-cart-api/1.0", gotUserAgent)
	assert.Equal(t, "shopping-cart", gotForwarded)
}

func TestRelay_NoCredentialStillDispatches(t *testing.T) {
	var gotAuth string
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	httpClient := NewHTTPClient(5*time.Second, zerolog.Nop())

	// Plain background context: no saved token, no raw header.
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.True(t, called)
	assert.Empty(t, gotAuth)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRelay_HeaderFallbackCredential(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	httpClient := NewHTTPClient(5*time.Second, zerolog.Nop())

	// Only the raw inbound Authorization header was captured.
	ctx := token.WithAuthorizationHeader(context.Background(), "Bearer fallback-tok")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "Bearer fallback-tok", gotAuth)
}

func TestRelay_TransportErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	server.Close() // refuse connections

	httpClient := NewHTTPClient(1*time.Second, zerolog.Nop())

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := httpClient.Do(req) //nolint:bodyclose
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestRelay_DoesNotMutateCallerRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	httpClient := NewHTTPClient(5*time.Second, zerolog.Nop())

	ctx := token.WithToken(context.Background(), "abc123")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, req.Header.Get("Authorization"))
}
