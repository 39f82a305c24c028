//go:build wireinject

package api

import (
	"github.com/google/wire"
	"github/walletgrid/go-custody-wallet/internal/config"
	"github/walletgrid/go-custody-wallet/internal/custody"
	"github/walletgrid/go-custody-wallet/internal/identity"
	"github/walletgrid/go-custody-wallet/internal/metrics"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	custodySet,
	identitySet,
	NewWalletCache,
	NewLocalStateService,
	metrics.New,
	NewClock,
)

var custodySet = wire.NewSet(
	NewCustodyClient,
	wire.Bind(new(CustodyService), new(*custody.Client)),
)

var identitySet = wire.NewSet(
	NewIdentityClient,
	wire.Bind(new(IdentityService), new(*identity.Client)),
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
