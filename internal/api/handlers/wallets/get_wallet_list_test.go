package wallets_test

import (
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

func TestGetWalletList(t *testing.T) {
	var upstreamCalls int32

	custodyStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wallets", r.URL.Path)
		require.Equal(t, "Bearer token-a", r.Header.Get("Authorization"))
		atomic.AddInt32(&upstreamCalls, 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{
					"id": "wa-1vr89-07nqd",
					"network": "EthereumSepolia",
					"address": "0x8A90CAb2b38dba80c64b7734e58Ee1dB38B8992e",
					"status": "Active",
					"custodial": true,
					"signingKey": {"scheme": "ECDSA", "curve": "secp256k1", "publicKey": "02af80"}
				}
			]
		}`))
	}))
	defer custodyStub.Close()

	cfg := test.DefaultTestServerConfig(t)
	cfg.Custody.BaseURL = custodyStub.URL

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/wallets/list", nil, test.HeadersWithSessionCookie(s, "token-a"))
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.GetWalletListResponse
		test.ParseResponseBody(t, res, &response)
		require.Len(t, response.Items, 1)
		assert.Equal(t, "wa-1vr89-07nqd", *response.Items[0].ID)
		assert.Equal(t, "Active", *response.Items[0].Status)
		require.NotNil(t, response.Items[0].SigningKey)
		assert.Equal(t, "secp256k1", *response.Items[0].SigningKey.Curve)

		// the second request within the TTL is served from cache
		res = test.PerformRequest(t, s, "GET", "/api/v1/wallets/list", nil, test.HeadersWithSessionCookie(s, "token-a"))
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.EqualValues(t, 1, atomic.LoadInt32(&upstreamCalls))
	})
}

func TestGetWalletListWithoutSession(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/wallets/list", nil, nil)

		require.Equal(t, http.StatusUnauthorized, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeINVALIDSESSION, *response.Type)
	})
}

func TestGetWalletListExpiredUpstreamSession(t *testing.T) {
	custodyStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid token"}`))
	}))
	defer custodyStub.Close()

	cfg := test.DefaultTestServerConfig(t)
	cfg.Custody.BaseURL = custodyStub.URL

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/wallets/list", nil, test.HeadersWithSessionCookie(s, "expired"))

		require.Equal(t, http.StatusUnauthorized, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeINVALIDSESSION, *response.Type)
	})
}

func TestGetWalletListUpstreamDown(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		// the default test config points the custody base URL at a closed port
		res := test.PerformRequest(t, s, "GET", "/api/v1/wallets/list", nil, test.HeadersWithSessionCookie(s, "token-a"))

		require.Equal(t, http.StatusBadGateway, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeUPSTREAMUNAVAILABLE, *response.Type)
	})
}
