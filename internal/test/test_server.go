package test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github/walletgrid/go-custody-wallet/internal/api"
	"github/walletgrid/go-custody-wallet/internal/api/router"
	"github/walletgrid/go-custody-wallet/internal/config"
)

// DefaultTestServerConfig returns the service config with all externally
// visible side effects disabled: the local state store lives in memory and
// the upstream provider URLs point nowhere. Tests talking to an upstream
// override the URLs with an httptest server.
func DefaultTestServerConfig(t *testing.T) config.Server {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Echo.ListenAddress = ":0"
	cfg.Echo.EnableLoggerMiddleware = false
	cfg.Custody.BaseURL = "http://127.0.0.1:1/custody"
	cfg.Identity.BaseURL = "http://127.0.0.1:1/identity"
	cfg.LocalState.InMemory = true

	return cfg
}

// WithTestServer creates a fully initialized server with the default test
// config and passes it to the closure.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()
	WithTestServerConfigurable(t, DefaultTestServerConfig(t), closure)
}

// WithTestServerConfigurable creates a fully initialized server with the
// given config and passes it to the closure.
func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.InitNewServer(cfg)
	require.NoError(t, err)

	router.Init(s)

	defer func() {
		errs := s.Shutdown(t.Context())
		for _, err := range errs {
			t.Errorf("failed to shutdown server: %v", err)
		}
	}()

	closure(s)
}
