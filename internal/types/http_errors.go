package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// PublicHTTPErrorType is the machine readable error type identifier.
type PublicHTTPErrorType = string

const (
	// PublicHTTPErrorTypeGeneric is the fallback error type.
	PublicHTTPErrorTypeGeneric PublicHTTPErrorType = "generic"
	// PublicHTTPErrorTypeUPSTREAMUNAVAILABLE marks errors caused by a failing upstream provider call.
	PublicHTTPErrorTypeUPSTREAMUNAVAILABLE PublicHTTPErrorType = "UPSTREAM_UNAVAILABLE"
	// PublicHTTPErrorTypeINVALIDSESSION marks requests with a missing or expired session cookie.
	PublicHTTPErrorTypeINVALIDSESSION PublicHTTPErrorType = "INVALID_SESSION"
)

// PublicHTTPError is the public JSON error rendering of failed requests.
type PublicHTTPError struct {
	// HTTP status code returned for the error
	// Required: true
	Code *int64 `json:"status"`

	// More detailed, human-readable, optional explanation of the error
	Detail string `json:"detail,omitempty"`

	// Short, human-readable description of the error
	// Required: true
	Title *string `json:"title"`

	// Type of error returned, should be used for client-side error handling
	// Required: true
	Type *string `json:"type"`
}

// Validate validates this public Http error
func (m *PublicHTTPError) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("status", "body", m.Code); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("title", "body", m.Title); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("type", "body", m.Type); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// HTTPValidationErrorDetail carries one failed payload validation.
type HTTPValidationErrorDetail struct {
	// Error describing field validation failure
	// Required: true
	Error *string `json:"error"`

	// Indicates how the invalid field was provided
	// Required: true
	In *string `json:"in"`

	// Key of field failing validation
	// Required: true
	Key *string `json:"key"`
}

// Validate validates this Http validation error detail
func (m *HTTPValidationErrorDetail) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("error", "body", m.Error); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("in", "body", m.In); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("key", "body", m.Key); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// PublicHTTPValidationError is a PublicHTTPError with payload validation details.
type PublicHTTPValidationError struct {
	PublicHTTPError

	// List of failed payload validations
	ValidationErrors []*HTTPValidationErrorDetail `json:"validationErrors"`
}

// Validate validates this public Http validation error
func (m *PublicHTTPValidationError) Validate(formats strfmt.Registry) error {
	var res []error

	if err := m.PublicHTTPError.Validate(formats); err != nil {
		res = append(res, err)
	}

	for i := range m.ValidationErrors {
		if m.ValidationErrors[i] == nil {
			continue
		}

		if err := m.ValidationErrors[i].Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}
