package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/walletgrid/go-custody-wallet/internal/api"
	"github/walletgrid/go-custody-wallet/internal/api/httperrors"
	"github/walletgrid/go-custody-wallet/internal/types"
	"github/walletgrid/go-custody-wallet/internal/util"
)

func PostRegisterInitRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Auth.POST("/register/init", postRegisterInitHandler(s))
}

func postRegisterInitHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostRegisterInitPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		challenge, err := s.Identity.CreateRegistrationChallenge(ctx, *body.Username)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to create registration challenge")
			return httperrors.ErrBadGatewayUpstream
		}

		// the challenge is consumed by the client's authenticator verbatim
		return c.JSONBlob(http.StatusOK, challenge.Raw)
	}
}
