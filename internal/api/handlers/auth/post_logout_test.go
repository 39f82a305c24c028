package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/walletgrid/go-custody-wallet/internal/api"
	"github/walletgrid/go-custody-wallet/internal/test"
	"github/walletgrid/go-custody-wallet/internal/types"
)

func TestPostLogout(t *testing.T) {
	var logoutCalls int32

	identityStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/logout", r.URL.Path)
		require.Equal(t, "Bearer token-a", r.Header.Get("Authorization"))

		// without a request body only the current session is terminated
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, false, body["allSessions"])

		atomic.AddInt32(&logoutCalls, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer identityStub.Close()

	cfg := test.DefaultTestServerConfig(t)
	cfg.Identity.BaseURL = identityStub.URL

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/auth/logout", nil, test.HeadersWithSessionCookie(s, "token-a"))

		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.EqualValues(t, 1, atomic.LoadInt32(&logoutCalls))

		// the session cookie is expired
		cookies := res.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, s.Config.Auth.CookieName, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	})
}

func TestPostLogoutAllSessions(t *testing.T) {
	identityStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["allSessions"])

		w.WriteHeader(http.StatusOK)
	}))
	defer identityStub.Close()

	cfg := test.DefaultTestServerConfig(t)
	cfg.Identity.BaseURL = identityStub.URL

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		payload := test.GenericPayload{"allSessions": true}

		res := test.PerformRequest(t, s, "POST", "/api/v1/auth/logout", payload, test.HeadersWithSessionCookie(s, "token-a"))
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
	})
}

func TestPostLogoutUpstreamFailureStillClearsSession(t *testing.T) {
	identityStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer identityStub.Close()

	cfg := test.DefaultTestServerConfig(t)
	cfg.Identity.BaseURL = identityStub.URL

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/auth/logout", nil, test.HeadersWithSessionCookie(s, "token-a"))

		// local teardown wins over the failing upstream call
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		cookies := res.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Empty(t, cookies[0].Value)
	})
}

func TestPostLogoutWithoutSession(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/auth/logout", nil, nil)

		require.Equal(t, http.StatusUnauthorized, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeINVALIDSESSION, *response.Type)
	})
}
