package util

import (
	"net/http"

	openapierrors "github.com/go-openapi/errors"
	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/walletgrid/go-custody-wallet/internal/api/httperrors"
	"github/walletgrid/go-custody-wallet/internal/types"
)

// BindAndValidateBody binds the request body of the echo context to the given
// payload and validates it, returning a typed HTTP validation error on failure.
func BindAndValidateBody(c echo.Context, v runtime.Validatable) error {
	binder, ok := c.Echo().Binder.(*echo.DefaultBinder)
	if !ok {
		return echo.ErrInternalServerError
	}

	if err := binder.BindBody(c, v); err != nil {
		return err
	}

	return validatePayload(c, v)
}

// ValidateAndReturn validates the given response payload before writing it
// out with the provided status code.
func ValidateAndReturn(c echo.Context, code int, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		return err
	}

	return c.JSON(code, v)
}

func validatePayload(c echo.Context, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		var details []*types.HTTPValidationErrorDetail

		switch compositeError := err.(type) {
		case *openapierrors.CompositeError:
			details = append(details, compositeValidationErrors(compositeError)...)
		case *openapierrors.Validation:
			details = append(details, validationErrorDetail(compositeError))
		default:
			LogFromEchoContext(c).Debug().Err(err).Msg("Failed to validate payload, unknown error")
			return err
		}

		return httperrors.NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusBadRequest), details)
	}

	return nil
}

func compositeValidationErrors(compositeError *openapierrors.CompositeError) []*types.HTTPValidationErrorDetail {
	var details []*types.HTTPValidationErrorDetail

	for _, err := range compositeError.Errors {
		switch errType := err.(type) {
		case *openapierrors.CompositeError:
			details = append(details, compositeValidationErrors(errType)...)
		case *openapierrors.Validation:
			details = append(details, validationErrorDetail(errType))
		}
	}

	return details
}

func validationErrorDetail(err *openapierrors.Validation) *types.HTTPValidationErrorDetail {
	return &types.HTTPValidationErrorDetail{
		Key:   swag.String(err.Name),
		In:    swag.String(err.In),
		Error: swag.String(err.Error()),
	}
}
