package wallets

import (
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/walletgrid/go-custody-wallet/internal/api"
	"github/walletgrid/go-custody-wallet/internal/api/httperrors"
	"github/walletgrid/go-custody-wallet/internal/auth"
	"github/walletgrid/go-custody-wallet/internal/custody"
	"github/walletgrid/go-custody-wallet/internal/metrics"
	"github/walletgrid/go-custody-wallet/internal/types"
	"github/walletgrid/go-custody-wallet/internal/util"
)

func PostSignatureInitRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.POST("/signatures/init", postSignatureInitHandler(s))
}

func postSignatureInitHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		token := auth.AuthTokenFromContext(ctx)
		if token == "" {
			return httperrors.ErrUnauthorizedSession
		}

		var body types.PostSignatureInitPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		requestBody := custody.SignatureRequestBody{
			Kind:    custody.SignatureKindMessage,
			Message: hex.EncodeToString([]byte(*body.Message)),
		}

		challenge, err := s.Custody.GenerateSignatureInit(ctx, token, *body.WalletID, requestBody)
		if err != nil {
			log.Debug().Err(err).Str("wallet_id", *body.WalletID).Msg("Failed to init signature")
			s.Metrics.SignatureInits.WithLabelValues(metrics.OutcomeFailure).Inc()
			return upstreamError(err)
		}

		s.Metrics.SignatureInits.WithLabelValues(metrics.OutcomeSuccess).Inc()

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostSignatureInitResponse{
			RequestBody: &types.SignatureRequestBody{
				Kind:    swag.String(requestBody.Kind),
				Message: swag.String(requestBody.Message),
			},
			Challenge: json.RawMessage(challenge.Raw),
		})
	}
}
