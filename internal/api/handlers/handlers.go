package handlers

import (
	"github.com/labstack/echo/v4"
	"github/walletgrid/go-custody-wallet/internal/api"
	"github/walletgrid/go-custody-wallet/internal/api/handlers/auth"
	"github/walletgrid/go-custody-wallet/internal/api/handlers/common"
	"github/walletgrid/go-custody-wallet/internal/api/handlers/wallets"
)

// AttachAllRoutes attaches all registered routes to the server's routing groups.
func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = []*echo.Route{
		auth.PostLoginRoute(s),
		auth.PostLogoutRoute(s),
		auth.PostRegisterCompleteRoute(s),
		auth.PostRegisterInitRoute(s),
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		wallets.GetWalletListRoute(s),
		wallets.PostSignatureCompleteRoute(s),
		wallets.PostSignatureInitRoute(s),
	}
}
