package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup_CreatesAccount(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/user/signup", "", credsBody("alice", "s3cret"))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Data struct {
			Username string          `json:"username"`
			Flights  json.RawMessage `json:"flights"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Data.Username)
	assert.JSONEq(t, `[]`, string(resp.Data.Flights))

	// The credential never appears in the response.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestSignup_DuplicateUsername(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/user/signup", "", credsBody("alice", "s3cret"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/user/signup", "", credsBody("alice", "other"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestSignup_BadRequests(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"username": "alice"`},
		{name: "empty username", body: credsBody("", "s3cret")},
		{name: "empty password", body: credsBody("alice", "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/user/signup", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin_ReturnsTokenAndHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/user/signup", "", credsBody("alice", "s3cret"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/user/login", "", credsBody("alice", "s3cret"))
	require.Equal(t, http.StatusOK, rec.Code)

	authHeader := rec.Header().Get("Authorization")
	require.True(t, strings.HasPrefix(authHeader, "Bearer "))

	var resp struct {
		Data struct {
			User struct {
				Username string `json:"username"`
			} `json:"user"`
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Data.User.Username)
	assert.Equal(t, strings.TrimPrefix(authHeader, "Bearer "), resp.Data.Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/user/signup", "", credsBody("alice", "s3cret"))
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name string
		body string
	}{
		{name: "wrong password", body: credsBody("alice", "wrong")},
		{name: "unknown username", body: credsBody("nobody", "s3cret")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/user/login", "", tt.body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
