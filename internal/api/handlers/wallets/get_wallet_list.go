package wallets

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/walletgrid/go-custody-wallet/internal/api"
	"github/walletgrid/go-custody-wallet/internal/api/httperrors"
	"github/walletgrid/go-custody-wallet/internal/auth"
	"github/walletgrid/go-custody-wallet/internal/custody"
	"github/walletgrid/go-custody-wallet/internal/types"
	"github/walletgrid/go-custody-wallet/internal/util"
)

func GetWalletListRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.GET("/list", getWalletListHandler(s))
}

func getWalletListHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		token := auth.AuthTokenFromContext(ctx)
		if token == "" {
			return httperrors.ErrUnauthorizedSession
		}

		list, err := s.Wallets.List(ctx, token)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to list wallets")
			return upstreamError(err)
		}

		items := make([]*types.WalletItem, 0, len(list.Items))
		for _, w := range list.Items {
			items = append(items, walletItem(w))
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.GetWalletListResponse{
			Items: items,
		})
	}
}

func walletItem(w *custody.Wallet) *types.WalletItem {
	item := &types.WalletItem{
		ID:        swag.String(w.ID),
		Network:   swag.String(w.Network),
		Address:   w.Address,
		Status:    swag.String(string(w.Status)),
		Name:      w.Name,
		Custodial: w.Custodial,
		Tags:      w.Tags,
	}

	if w.SigningKey.PublicKey != "" {
		item.SigningKey = &types.WalletSigningKey{
			Scheme:    swag.String(w.SigningKey.Scheme),
			Curve:     swag.String(w.SigningKey.Curve),
			PublicKey: swag.String(w.SigningKey.PublicKey),
		}
	}

	return item
}

// upstreamError maps custody provider failures to the public error shape,
// rejecting the local session when the provider no longer accepts the token.
func upstreamError(err error) error {
	var apiErr *custody.APIError
	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
		return httperrors.ErrUnauthorizedSession
	}

	return httperrors.ErrBadGatewayUpstream
}
