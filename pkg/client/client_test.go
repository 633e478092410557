package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/nepalfund/nepalfund_backend/pkg/onboarding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves a single Google account that starts with an incomplete profile.
func fakeAPI(t *testing.T) *httptest.Server {
	var completed atomic.Bool
	mux := http.NewServeMux()
	user := func() map[string]any {
		return map[string]any{
			"id":               "u-1",
			"email":            "hari@example.com",
			"firstName":        "Hari",
			"lastName":         "Bahadur Thapa",
			"profileCompleted": completed.Load(),
		}
	}
	mux.HandleFunc("/auth/google-login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["credential"] != "good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Invalid Google token"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "user": user(), "token": "jwt-1"})
	})
	mux.HandleFunc("/auth/google-register", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jwt-1", r.Header.Get("Authorization"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hari@example.com", body["email"])
		completed.Store(true)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "user": user()})
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "user": user(), "token": "jwt-2"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GoogleOnboardingLifecycle(t *testing.T) {
	srv := fakeAPI(t)
	store := onboarding.NewMemoryStore()
	c := New(srv.URL+"/", store)
	ctx := context.Background()

	dest, err := c.GoogleLogin(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, onboarding.PathCompletion, dest.Path)
	require.NotNil(t, dest.Prefill)
	assert.Equal(t, "Hari", dest.Prefill.GivenName)

	s, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "jwt-1", s.Token)

	dest, err = c.CompleteGoogleProfile(ctx, "Hari Bahadur Thapa", "9841000000")
	require.NoError(t, err)
	assert.Equal(t, onboarding.PathFeed, dest.Path)

	dest, err = c.Login(ctx, "hari@example.com", "unused")
	require.NoError(t, err)
	assert.Equal(t, onboarding.PathFeed, dest.Path)

	assert.Equal(t, onboarding.PathLogin, c.Logout().Path)
	_, ok = store.Load()
	assert.False(t, ok)
}

func TestClient_APIError(t *testing.T) {
	srv := fakeAPI(t)
	store := onboarding.NewMemoryStore()
	c := New(srv.URL, store)

	_, err := c.GoogleLogin(context.Background(), "forged")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid Google token", apiErr.Message)
	_, ok := store.Load()
	assert.False(t, ok)
}

func TestClient_CompleteWithoutSession(t *testing.T) {
	c := New("http://unused.invalid", onboarding.NewMemoryStore())
	dest, err := c.CompleteGoogleProfile(context.Background(), "A B", "9841000000")
	require.NoError(t, err)
	assert.Equal(t, onboarding.PathLogin, dest.Path)
	assert.Equal(t, onboarding.PathLogin, c.Current().Path)
}
