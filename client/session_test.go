package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorruptUser(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, userKey), []byte("{not json"), 0o600))
}

func authBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, authResponse{
			Token: "jwt-abc",
			User:  UserInfo{ID: 5, Email: "maya@example.com", Role: RoleOrganizer, FirstName: "Maya"},
		})
	})
	mux.HandleFunc("POST /v1/auth/signout", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, nil)
	})
	mux.HandleFunc("GET /v1/events", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer jwt-abc" {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		writeData(w, []Event{})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginPersistsCredentials(t *testing.T) {
	srv := authBackend(t)
	storage := NewMemoryStorage()
	c := New(srv.URL, WithStorage(storage))

	user, err := c.Session().Login(context.Background(), "maya@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "Maya", user.FirstName)
	assert.True(t, c.Session().IsAuthenticated())

	token, stored, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)
	require.NotNil(t, stored)
	assert.Equal(t, RoleOrganizer, stored.Role)
}

func TestRehydrateTrustsStoredToken(t *testing.T) {
	srv := authBackend(t)
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save("jwt-abc", UserInfo{ID: 5, Email: "maya@example.com", Role: RoleOrganizer}))

	c := New(srv.URL, WithStorage(storage))

	assert.True(t, c.Session().IsAuthenticated())
	require.NotNil(t, c.Session().User())
	assert.Equal(t, "maya@example.com", c.Session().User().Email)

	var events []Event
	require.NoError(t, c.get(context.Background(), "/events", &events))
}

func TestUnauthorizedResponsePurgesCredentials(t *testing.T) {
	srv := authBackend(t)
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save("expired-token", UserInfo{ID: 5, Email: "maya@example.com"}))

	c := New(srv.URL, WithStorage(storage))
	require.True(t, c.Session().IsAuthenticated())

	var events []Event
	err := c.get(context.Background(), "/events", &events)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	assert.False(t, c.Session().IsAuthenticated())
	assert.Nil(t, c.Session().User())

	token, user, loadErr := storage.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestSignoutClearsEvenWhenBackendFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/signout", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusInternalServerError, "temporary failure")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	storage := NewMemoryStorage()
	require.NoError(t, storage.Save("jwt-abc", UserInfo{ID: 5}))
	c := New(srv.URL, WithStorage(storage))

	err := c.Session().Signout(context.Background())

	require.Error(t, err)
	assert.False(t, c.Session().IsAuthenticated())
	token, user, loadErr := storage.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestFileStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewFileStorage(dir)
	require.NoError(t, err)

	require.NoError(t, storage.Save("jwt-abc", UserInfo{ID: 5, Email: "maya@example.com", Role: RoleOrganizer}))

	token, user, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)
	require.NotNil(t, user)
	assert.Equal(t, uint(5), user.ID)

	require.NoError(t, storage.Clear())
	token, user, err = storage.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestFileStorageCorruptUserMeansSignedOut(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewFileStorage(dir)
	require.NoError(t, err)
	require.NoError(t, storage.Save("jwt-abc", UserInfo{ID: 5}))

	writeCorruptUser(t, dir)

	token, user, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)
}
