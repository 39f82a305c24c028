package wallets

import (
	"encoding/hex"
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

func PostSignatureCompleteRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.POST("/signatures/complete", postSignatureCompleteHandler(s))
}

func postSignatureCompleteHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		token := auth.AuthTokenFromContext(ctx)
		if token == "" {
			return httperrors.ErrUnauthorizedSession
		}

		var body types.PostSignatureCompletePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		// the request body has to reach the custody provider exactly as
		// issued by the init call, it is paired with the challenge there
		requestBody := custody.SignatureRequestBody{
			Kind:    *body.RequestBody.Kind,
			Message: *body.RequestBody.Message,
		}

		signedChallenge := custody.SignedChallenge{
			ChallengeIdentifier: *body.SignedChallenge.ChallengeIdentifier,
			FirstFactor:         body.SignedChallenge.FirstFactor,
		}

		result, err := s.Custody.GenerateSignatureComplete(ctx, token, *body.WalletID, requestBody, signedChallenge)
		if err != nil {
			log.Debug().Err(err).Str("wallet_id", *body.WalletID).Msg("Failed to complete signature")
			s.Metrics.SignatureCompletions.WithLabelValues(metrics.OutcomeFailure).Inc()
			return upstreamError(err)
		}

		s.Metrics.SignatureCompletions.WithLabelValues(metrics.OutcomeSuccess).Inc()

		// expose the signed message in its plaintext form again
		message := result.RequestBody.Message
		if decoded, err := hex.DecodeString(message); err == nil {
			message = string(decoded)
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostSignatureCompleteResponse{
			ID:       swag.String(result.ID),
			WalletID: swag.String(result.WalletID),
			Status:   swag.String(result.Status),
			RequestBody: &types.SignatureRequestBody{
				Kind:    swag.String(result.RequestBody.Kind),
				Message: swag.String(message),
			},
			Signature: &types.SignatureEnvelope{
				Encoded: swag.String(result.Signature.Encoded),
			},
		})
	}
}
