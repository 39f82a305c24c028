package api

import (
	"github.com/dropbox/godropbox/time2"
	"github/walletgrid/go-custody-wallet/internal/config"
	"github/walletgrid/go-custody-wallet/internal/custody"
	"github/walletgrid/go-custody-wallet/internal/identity"
	"github/walletgrid/go-custody-wallet/internal/localstate"
	"github/walletgrid/go-custody-wallet/internal/metrics"
	"github/walletgrid/go-custody-wallet/internal/walletcache"
)

// PROVIDERS - https://github.com/google/wire/blob/main/docs/guide.md#providers

func NewClock(cfg config.Server) time2.Clock {
	return time2.DefaultClock
}

func NewCustodyClient(cfg config.Server) *custody.Client {
	return custody.NewClient(cfg.Custody)
}

func NewIdentityClient(cfg config.Server) *identity.Client {
	return identity.NewClient(cfg.Identity)
}

func NewLocalStateService(cfg config.Server) (*localstate.Service, error) {
	return localstate.NewService(cfg.LocalState)
}

func NewWalletCache(cfg config.Server, custodyService CustodyService, clock time2.Clock, m *metrics.Service) *walletcache.Service {
	return walletcache.NewService(custodyService, clock, cfg.Wallets.CacheTTL, m)
}
