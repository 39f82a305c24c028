package httperrors

import (
	"net/http"

	"github/walletgrid/go-custody-wallet/internal/types"
)

var (
	ErrUnauthorizedSession = NewHTTPError(http.StatusUnauthorized, types.PublicHTTPErrorTypeINVALIDSESSION, "No valid session.")
	ErrBadGatewayUpstream  = NewHTTPError(http.StatusBadGateway, types.PublicHTTPErrorTypeUPSTREAMUNAVAILABLE, "Upstream provider request failed.")
	ErrUnauthorizedLogin   = NewHTTPError(http.StatusUnauthorized, types.PublicHTTPErrorTypeGeneric, "Authentication failed.")
)
