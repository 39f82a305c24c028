package httperrors

import (
	"fmt"

	"github.com/go-openapi/swag"
	"github/walletgrid/go-custody-wallet/internal/types"
)

// HTTPError is the internal error type rendered as types.PublicHTTPError by
// the global error handler.
type HTTPError struct {
	types.PublicHTTPError
	Internal       error
	AdditionalData map[string]string
}

// NewHTTPError creates a generic HTTP error with the given status, type and title.
func NewHTTPError(code int, errorType types.PublicHTTPErrorType, title string) *HTTPError {
	return &HTTPError{
		PublicHTTPError: types.PublicHTTPError{
			Code:  swag.Int64(int64(code)),
			Type:  swag.String(errorType),
			Title: swag.String(title),
		},
	}
}

// NewHTTPErrorWithDetail creates a generic HTTP error with an additional detail message.
func NewHTTPErrorWithDetail(code int, errorType types.PublicHTTPErrorType, title string, detail string) *HTTPError {
	return &HTTPError{
		PublicHTTPError: types.PublicHTTPError{
			Code:   swag.Int64(int64(code)),
			Type:   swag.String(errorType),
			Title:  swag.String(title),
			Detail: detail,
		},
	}
}

func (e *HTTPError) Error() string {
	return formatError("HTTPError", &e.PublicHTTPError, e.Internal, e.AdditionalData)
}

// HTTPValidationError is an HTTPError enriched with payload validation details.
type HTTPValidationError struct {
	types.PublicHTTPValidationError
	Internal       error
	AdditionalData map[string]string
}

// NewHTTPValidationError creates an HTTP error carrying failed payload validations.
func NewHTTPValidationError(code int, errorType types.PublicHTTPErrorType, title string, validationErrors []*types.HTTPValidationErrorDetail) *HTTPValidationError {
	return &HTTPValidationError{
		PublicHTTPValidationError: types.PublicHTTPValidationError{
			PublicHTTPError: types.PublicHTTPError{
				Code:  swag.Int64(int64(code)),
				Type:  swag.String(errorType),
				Title: swag.String(title),
			},
			ValidationErrors: validationErrors,
		},
	}
}

func (e *HTTPValidationError) Error() string {
	str := formatError("HTTPValidationError", &e.PublicHTTPError, e.Internal, e.AdditionalData)

	for _, validationError := range e.ValidationErrors {
		str = fmt.Sprintf("%s - %s (in %s): %s", str, swag.StringValue(validationError.Key), swag.StringValue(validationError.In), swag.StringValue(validationError.Error))
	}

	return str
}

func formatError(errType string, publicError *types.PublicHTTPError, internal error, additionalData map[string]string) string {
	str := fmt.Sprintf("%s %d (%s): %s", errType, swag.Int64Value(publicError.Code), swag.StringValue(publicError.Type), swag.StringValue(publicError.Title))

	if len(publicError.Detail) > 0 {
		str = fmt.Sprintf("%s - %s", str, publicError.Detail)
	}

	if internal != nil {
		str = fmt.Sprintf("%s, %v", str, internal)
	}

	if len(additionalData) > 0 {
		str = fmt.Sprintf("%s. %v", str, additionalData)
	}

	return str
}
