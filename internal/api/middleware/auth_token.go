package middleware

import (
	"github.com/labstack/echo/v4"
	"github/walletgrid/go-custody-wallet/internal/api"
	"github/walletgrid/go-custody-wallet/internal/auth"
)

// AuthToken extracts the provider session token from the session cookie and
// attaches it to the request context. Requests without a cookie pass through,
// handlers requiring a session reject them individually.
func AuthToken(s *api.Server) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(s.Config.Auth.CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithAuthToken(req.Context(), cookie.Value)))

			return next(c)
		}
	}
}
