package auth

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/walletgrid/go-custody-wallet/internal/api"
	"github/walletgrid/go-custody-wallet/internal/api/httperrors"
	"github/walletgrid/go-custody-wallet/internal/auth"
	"github/walletgrid/go-custody-wallet/internal/types"
	"github/walletgrid/go-custody-wallet/internal/util"
)

func PostLogoutRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Auth.POST("/logout", postLogoutHandler(s))
}

func postLogoutHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		token := auth.AuthTokenFromContext(ctx)
		if token == "" {
			return httperrors.ErrUnauthorizedSession
		}

		// the body is optional, an empty request ends the current session only
		var body types.PostLogoutPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		// the upstream session revocation is best effort, the local session
		// is cleared regardless of its outcome
		if err := s.Identity.Logout(ctx, token, util.FalseIfNil(body.AllSessions)); err != nil {
			log.Debug().Err(err).Msg("Failed to revoke provider session")
		}

		c.SetCookie(&http.Cookie{
			Name:     s.Config.Auth.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Secure:   s.Config.Auth.CookieSecure,
			HttpOnly: s.Config.Auth.CookieHTTPOnly,
			SameSite: http.SameSiteStrictMode,
		})

		s.Wallets.Invalidate()
		s.Metrics.Logouts.Inc()

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostLogoutResponse{
			Message: swag.String("Logout successful"),
		})
	}
}
