package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/walletgrid/go-custody-wallet/internal/api"
	"github/walletgrid/go-custody-wallet/internal/api/httperrors"
	"github/walletgrid/go-custody-wallet/internal/types"
	"github/walletgrid/go-custody-wallet/internal/util"
)

func PostRegisterCompleteRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Auth.POST("/register/complete", postRegisterCompleteHandler(s))
}

func postRegisterCompleteHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostRegisterCompletePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		result, err := s.Identity.RegisterEndUser(
			ctx,
			*body.TemporaryAuthenticationToken,
			body.SignedChallenge.FirstFactorCredential,
			s.Config.Identity.DefaultNetwork,
		)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to register end user")
			return httperrors.ErrBadGatewayUpstream
		}

		return c.JSONBlob(http.StatusOK, result)
	}
}
