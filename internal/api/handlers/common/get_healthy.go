package common

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github/walletgrid/go-custody-wallet/internal/api"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// getHealthyHandler reports process liveness. Guarded by the management
// secret as it is reachable without a session.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		secret := c.QueryParam("mgmt-secret")
		if subtle.ConstantTimeCompare([]byte(secret), []byte(s.Config.Auth.ManagementSecret)) != 1 {
			return echo.ErrUnauthorized
		}

		return c.String(http.StatusOK, "OK.")
	}
}
