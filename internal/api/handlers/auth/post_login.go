package auth

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/walletgrid/go-custody-wallet/internal/api"
	"github/walletgrid/go-custody-wallet/internal/api/httperrors"
	"github/walletgrid/go-custody-wallet/internal/types"
	"github/walletgrid/go-custody-wallet/internal/util"
)

func PostLoginRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Auth.POST("/login", postLoginHandler(s))
}

func postLoginHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostLoginPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		result, err := s.Identity.DelegatedLogin(ctx, *body.Username)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to perform delegated login")
			return httperrors.ErrUnauthorizedLogin
		}

		c.SetCookie(&http.Cookie{
			Name:     s.Config.Auth.CookieName,
			Value:    result.Token,
			Path:     "/",
			MaxAge:   int(s.Config.Auth.CookieMaxAge.Seconds()),
			Secure:   s.Config.Auth.CookieSecure,
			HttpOnly: s.Config.Auth.CookieHTTPOnly,
			SameSite: http.SameSiteStrictMode,
		})

		// a previous session may have cached another user's wallets
		s.Wallets.Invalidate()
		s.Metrics.Logins.Inc()

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostLoginResponse{
			Username: body.Username,
			Message:  swag.String("Login successful"),
		})
	}
}
