package identity_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/walletgrid/go-custody-wallet/internal/config"
	"github/walletgrid/go-custody-wallet/internal/identity"
)

func newTestClient(t *testing.T, handler http.Handler) *identity.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return identity.NewClient(config.IdentityProvider{
		BaseURL:       server.URL,
		AppID:         "ap-341e6-12nj9",
		ClientTimeout: 5 * time.Second,
	})
}

func TestDelegatedLogin(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login/delegated", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user@example.com", body["username"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token": "token-a"}`))
	}))

	result, err := client.DelegatedLogin(t.Context(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "token-a", result.Token)
}

func TestDelegatedLoginRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unknown user"}`))
	}))

	_, err := client.DelegatedLogin(t.Context(), "nobody@example.com")

	var apiErr *identity.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestCreateRegistrationChallenge(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/registration/delegated", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "EndUser", body["kind"])
		assert.Equal(t, "user@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"temporaryAuthenticationToken": "temp-token",
			"challenge": "Y2hhbGxlbmdl",
			"rp": {"id": "example.com", "name": "Example"}
		}`))
	}))

	challenge, err := client.CreateRegistrationChallenge(t.Context(), "user@example.com")
	require.NoError(t, err)

	assert.Equal(t, "temp-token", challenge.TemporaryAuthenticationToken)

	// the raw payload survives for the client-side authenticator
	var raw map[string]any
	require.NoError(t, json.Unmarshal(challenge.Raw, &raw))
	assert.Contains(t, raw, "rp")
}

func TestRegisterEndUser(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/registration/enduser", r.URL.Path)
		assert.Equal(t, "Bearer temp-token", r.Header.Get("Authorization"))

		var body struct {
			FirstFactorCredential json.RawMessage `json:"firstFactorCredential"`
			Wallets               []struct {
				Network string `json:"network"`
			} `json:"wallets"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Wallets, 1)
		assert.Equal(t, "EthereumSepolia", body.Wallets[0].Network)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user": {"id": "us-1"}, "wallets": [{"id": "wa-1vr89-07nqd"}]}`))
	}))

	result, err := client.RegisterEndUser(t.Context(), "temp-token", json.RawMessage(`{"credentialKind":"Fido2"}`), "EthereumSepolia")
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(result, &raw))
	assert.Contains(t, raw, "wallets")
}

func TestLogout(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/logout", r.URL.Path)
		assert.Equal(t, "Bearer token-a", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, false, body["allSessions"])

		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.Logout(t.Context(), "token-a", false))
}

func TestLogoutAllSessions(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["allSessions"])

		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.Logout(t.Context(), "token-a", true))
}
