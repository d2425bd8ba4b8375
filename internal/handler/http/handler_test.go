package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/skyfare/bookingd/internal/config"
	"github.com/skyfare/bookingd/internal/logger"
	"github.com/skyfare/bookingd/internal/service"
	"github.com/skyfare/bookingd/internal/store"
)

// newTestRouter wires a full handler over the in-memory store, returning
// the router and the services for direct fixture setup.
func newTestRouter(t *testing.T) (*chi.Mux, *service.Services) {
	t.Helper()

	cfg := config.StructuredConfig{
		Auth: config.Auth{
			TokenSignKey:  "test-sign-key",
			TokenIssuer:   "bookingd-test",
			TokenDuration: time.Hour,
		},
	}
	storages := store.Storages{Documents: store.NewMemoryDocumentStore(logger.Nop())}
	services := service.NewServices(storages, cfg, logger.Nop())

	return NewHandler(services, logger.Nop()).Init(), services
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func credsBody(username, password string) string {
	return fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
}

// signupAndLogin registers a user through the API and returns a valid
// bearer token for them.
func signupAndLogin(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/user/signup", "", credsBody(username, password))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/user/login", "", credsBody(username, password))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}
