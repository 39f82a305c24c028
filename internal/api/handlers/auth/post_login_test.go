package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/walletgrid/go-custody-wallet/internal/api"
	"github/walletgrid/go-custody-wallet/internal/test"
	"github/walletgrid/go-custody-wallet/internal/types"
)

func TestPostLogin(t *testing.T) {
	identityStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/identity/auth/login/delegated", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token": "token-a"}`))
	}))
	defer identityStub.Close()

	cfg := test.DefaultTestServerConfig(t)
	cfg.Identity.BaseURL = identityStub.URL + "/identity"

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/auth/login", test.GenericPayload{
			"username": "user@example.com",
		}, nil)

		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.PostLoginResponse
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, "user@example.com", *response.Username)

		cookies := res.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, s.Config.Auth.CookieName, cookies[0].Name)
		assert.Equal(t, "token-a", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})
}

func TestPostLoginUpstreamRejects(t *testing.T) {
	identityStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unknown user"}`))
	}))
	defer identityStub.Close()

	cfg := test.DefaultTestServerConfig(t)
	cfg.Identity.BaseURL = identityStub.URL

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/auth/login", test.GenericPayload{
			"username": "nobody@example.com",
		}, nil)

		require.Equal(t, http.StatusUnauthorized, res.Result().StatusCode)
		assert.Empty(t, res.Result().Cookies())
	})
}

func TestPostLoginValidation(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/auth/login", test.GenericPayload{}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var response types.PublicHTTPValidationError
		test.ParseResponseBody(t, res, &response)
		require.Len(t, response.ValidationErrors, 1)
		assert.Equal(t, "username", *response.ValidationErrors[0].Key)
	})
}
