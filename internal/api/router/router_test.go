package router_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github/walletgrid/go-custody-wallet/internal/api"
	"github/walletgrid/go-custody-wallet/internal/test"
)

func TestMetricsEndpoint(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		// generate at least one measured request for the http subsystem
		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "GET", "/-/metrics", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		require.Contains(t, res.Body.String(), "custody_wallet_http_requests_total")
	})
}
