package types

import (
	"encoding/json"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// WalletItem is one custody provider managed wallet as exposed to clients.
type WalletItem struct {
	// Opaque wallet identifier assigned by the custody provider
	// Required: true
	ID *string `json:"id"`

	// Target network of the wallet, e.g. EthereumSepolia
	// Required: true
	Network *string `json:"network"`

	// Canonical address, absent until the wallet is provisioned
	Address string `json:"address,omitempty"`

	// Lifecycle status, Active or Archived
	// Required: true
	Status *string `json:"status"`

	// Signature scheme descriptor of the underlying key
	SigningKey *WalletSigningKey `json:"signingKey,omitempty"`

	// Optional display name
	Name string `json:"name,omitempty"`

	Custodial bool `json:"custodial"`

	// Free-form tags
	Tags []string `json:"tags"`
}

// Validate validates this wallet item
func (m *WalletItem) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("id", "body", m.ID); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("network", "body", m.Network); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("status", "body", m.Status); err != nil {
		res = append(res, err)
	}

	if m.SigningKey != nil {
		if err := m.SigningKey.Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// WalletSigningKey describes the signing key backing a wallet.
type WalletSigningKey struct {
	// Required: true
	Scheme *string `json:"scheme"`

	// Required: true
	Curve *string `json:"curve"`

	// Required: true
	PublicKey *string `json:"publicKey"`
}

// Validate validates this wallet signing key
func (m *WalletSigningKey) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("scheme", "body", m.Scheme); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("curve", "body", m.Curve); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("publicKey", "body", m.PublicKey); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// GetWalletListResponse mirrors the custody provider's paginated wallet list.
type GetWalletListResponse struct {
	// Required: true
	Items []*WalletItem `json:"items"`
}

// Validate validates this get wallet list response
func (m *GetWalletListResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if m.Items == nil {
		res = append(res, errors.Required("items", "body", nil))
	}

	for i := range m.Items {
		if m.Items[i] == nil {
			continue
		}

		if err := m.Items[i].Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// PostSignatureInitPayload starts a message signing flow for a wallet.
type PostSignatureInitPayload struct {
	// Required: true
	WalletID *string `json:"walletId"`

	// UTF-8 plaintext message to sign
	// Required: true
	Message *string `json:"message"`
}

// Validate validates this post signature init payload
func (m *PostSignatureInitPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("walletId", "body", m.WalletID); err != nil {
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

// SignatureRequestBody is the provider-agnostic signing request body. It must
// be echoed back unchanged in the completion call, the custody provider pairs
// it with the issued challenge.
type SignatureRequestBody struct {
	// Required: true
	Kind *string `json:"kind"`

	// Hex encoded UTF-8 message
	// Required: true
	Message *string `json:"message"`
}

// Validate validates this signature request body
func (m *SignatureRequestBody) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("kind", "body", m.Kind); err != nil {
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

// PostSignatureInitResponse returns the challenge and the exact request body
// required for the completion call.
type PostSignatureInitResponse struct {
	// Required: true
	RequestBody *SignatureRequestBody `json:"requestBody"`

	// Opaque server-issued challenge, passed through verbatim
	// Required: true
	Challenge json.RawMessage `json:"challenge"`
}

// Validate validates this post signature init response
func (m *PostSignatureInitResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if m.RequestBody == nil {
		res = append(res, errors.Required("requestBody", "body", nil))
	} else if err := m.RequestBody.Validate(formats); err != nil {
		res = append(res, err)
	}

	if len(m.Challenge) == 0 {
		res = append(res, errors.Required("challenge", "body", nil))
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// SignedChallenge authorizes the completion of a signing flow.
type SignedChallenge struct {
	// Required: true
	ChallengeIdentifier *string `json:"challengeIdentifier"`

	// Opaque passkey assertion
	// Required: true
	FirstFactor json.RawMessage `json:"firstFactor"`
}

// Validate validates this signed challenge
func (m *SignedChallenge) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("challengeIdentifier", "body", m.ChallengeIdentifier); err != nil {
		res = append(res, err)
	}

	if len(m.FirstFactor) == 0 {
		res = append(res, errors.Required("firstFactor", "body", nil))
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// PostSignatureCompletePayload completes a message signing flow.
type PostSignatureCompletePayload struct {
	// Required: true
	WalletID *string `json:"walletId"`

	// Must equal the request body returned by the init call
	// Required: true
	RequestBody *SignatureRequestBody `json:"requestBody"`

	// Required: true
	SignedChallenge *SignedChallenge `json:"signedChallenge"`
}

// Validate validates this post signature complete payload
func (m *PostSignatureCompletePayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("walletId", "body", m.WalletID); err != nil {
		res = append(res, err)
	}

	if m.RequestBody == nil {
		res = append(res, errors.Required("requestBody", "body", nil))
	} else if err := m.RequestBody.Validate(formats); err != nil {
		res = append(res, err)
	}

	if m.SignedChallenge == nil {
		res = append(res, errors.Required("signedChallenge", "body", nil))
	} else if err := m.SignedChallenge.Validate(formats); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// SignatureEnvelope is the final signature as returned by the custody provider.
type SignatureEnvelope struct {
	// Required: true
	Encoded *string `json:"encoded"`
}

// Validate validates this signature envelope
func (m *SignatureEnvelope) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("encoded", "body", m.Encoded); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// PostSignatureCompleteResponse returns the signature result. The request
// body's message is decoded back from hex to its UTF-8 plaintext form.
type PostSignatureCompleteResponse struct {
	// Required: true
	ID *string `json:"id"`

	// Required: true
	WalletID *string `json:"walletId"`

	// Required: true
	Status *string `json:"status"`

	// Required: true
	RequestBody *SignatureRequestBody `json:"requestBody"`

	// Required: true
	Signature *SignatureEnvelope `json:"signature"`
}

// Validate validates this post signature complete response
func (m *PostSignatureCompleteResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("id", "body", m.ID); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("walletId", "body", m.WalletID); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("status", "body", m.Status); err != nil {
		res = append(res, err)
	}

	if m.RequestBody == nil {
		res = append(res, errors.Required("requestBody", "body", nil))
	} else if err := m.RequestBody.Validate(formats); err != nil {
		res = append(res, err)
	}

	if m.Signature == nil {
		res = append(res, errors.Required("signature", "body", nil))
	} else if err := m.Signature.Validate(formats); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}
