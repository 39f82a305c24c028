package router

import (
	"errors"
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/walletgrid/go-custody-wallet/internal/api/httperrors"
	"github/walletgrid/go-custody-wallet/internal/types"
	"github/walletgrid/go-custody-wallet/internal/util"
)

type HTTPErrorHandlerConfig struct {
	HideInternalServerErrorDetails bool
}

// HTTPErrorHandlerWithConfig renders all errors bubbling out of handlers as
// types.PublicHTTPError JSON payloads with a consistent shape.
func HTTPErrorHandlerWithConfig(config HTTPErrorHandlerConfig) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		log := util.LogFromEchoContext(c)

		var code int
		var he error

		var httpError *httperrors.HTTPError
		var httpValidationError *httperrors.HTTPValidationError
		var echoHTTPError *echo.HTTPError

		switch {
		case errors.As(err, &httpError):
			code = int(*httpError.Code)

			if httpError.Internal != nil {
				if config.HideInternalServerErrorDetails {
					log.Debug().Err(httpError.Internal).Msg("Hiding internal error in response")
				} else {
					httpError.AdditionalData = map[string]string{"internalError": httpError.Internal.Error()}
				}
			}

			he = httpError
		case errors.As(err, &httpValidationError):
			code = int(*httpValidationError.Code)

			if httpValidationError.Internal != nil {
				if config.HideInternalServerErrorDetails {
					log.Debug().Err(httpValidationError.Internal).Msg("Hiding internal error in response")
				} else {
					httpValidationError.AdditionalData = map[string]string{"internalError": httpValidationError.Internal.Error()}
				}
			}

			he = httpValidationError
		case errors.As(err, &echoHTTPError):
			code = echoHTTPError.Code

			msg, ok := echoHTTPError.Message.(string)
			if !ok {
				msg = http.StatusText(echoHTTPError.Code)
			}

			he = &httperrors.HTTPError{
				PublicHTTPError: types.PublicHTTPError{
					Code:  swag.Int64(int64(echoHTTPError.Code)),
					Title: swag.String(msg),
					Type:  swag.String(types.PublicHTTPErrorTypeGeneric),
				},
			}
		default:
			code = http.StatusInternalServerError

			title := http.StatusText(http.StatusInternalServerError)
			if !config.HideInternalServerErrorDetails {
				title = err.Error()
			}

			log.Debug().Err(err).Msg("Handler returned a non HTTP error")

			he = &httperrors.HTTPError{
				PublicHTTPError: types.PublicHTTPError{
					Code:  swag.Int64(int64(code)),
					Title: swag.String(title),
					Type:  swag.String(types.PublicHTTPErrorTypeGeneric),
				},
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, he)
		}

		if err != nil {
			log.Error().Err(err).Msg("Failed to write error response")
		}
	}
}
