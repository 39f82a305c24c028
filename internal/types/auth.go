package types

import (
	"encoding/json"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// PostLoginPayload starts a delegated login flow for the given username.
type PostLoginPayload struct {
	// Username registered with the identity provider
	// Required: true
	Username *string `json:"username"`
}

// Validate validates this post login payload
func (m *PostLoginPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("username", "body", m.Username); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// PostLoginResponse acknowledges a successful delegated login.
type PostLoginResponse struct {
	// Required: true
	Username *string `json:"username"`

	// Required: true
	Message *string `json:"message"`
}

// Validate validates this post login response
func (m *PostLoginResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("username", "body", m.Username); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("message", "body", m.Message); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// PostRegisterInitPayload requests a delegated registration challenge.
type PostRegisterInitPayload struct {
	// Username to register with the identity provider
	// Required: true
	Username *string `json:"username"`
}

// Validate validates this post register init payload
func (m *PostRegisterInitPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("username", "body", m.Username); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// RegistrationSignedChallenge carries the attestation produced by the
// user's authenticator for the registration challenge. The credential is
// opaque to this service and passed through to the identity provider.
type RegistrationSignedChallenge struct {
	// Required: true
	FirstFactorCredential json.RawMessage `json:"firstFactorCredential"`
}

// Validate validates this registration signed challenge
func (m *RegistrationSignedChallenge) Validate(formats strfmt.Registry) error {
	var res []error

	if len(m.FirstFactorCredential) == 0 {
		res = append(res, errors.Required("firstFactorCredential", "body", nil))
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// PostRegisterCompletePayload completes a delegated registration flow.
type PostRegisterCompletePayload struct {
	// Required: true
	SignedChallenge *RegistrationSignedChallenge `json:"signedChallenge"`

	// Token issued alongside the registration challenge
	// Required: true
	TemporaryAuthenticationToken *string `json:"temporaryAuthenticationToken"`
}

// Validate validates this post register complete payload
func (m *PostRegisterCompletePayload) Validate(formats strfmt.Registry) error {
	var res []error

	if m.SignedChallenge == nil {
		res = append(res, errors.Required("signedChallenge", "body", nil))
	} else if err := m.SignedChallenge.Validate(formats); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("temporaryAuthenticationToken", "body", m.TemporaryAuthenticationToken); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// PostLogoutPayload optionally widens the logout scope. An empty request
// body is valid and terminates the current session only.
type PostLogoutPayload struct {
	// Terminate all provider sessions of the end user, not just this one
	AllSessions *bool `json:"allSessions,omitempty"`
}

// Validate validates this post logout payload
func (m *PostLogoutPayload) Validate(_ strfmt.Registry) error {
	return nil
}

// PostLogoutResponse acknowledges a logout. It is returned even when the
// upstream logout call failed, as the local session is cleared regardless.
type PostLogoutResponse struct {
	// Required: true
	Message *string `json:"message"`
}

// Validate validates this post logout response
func (m *PostLogoutResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("message", "body", m.Message); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}
