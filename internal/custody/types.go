package custody

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// WalletStatus is the lifecycle status of a custodial wallet.
type WalletStatus string

const (
	// WalletStatusActive marks a usable wallet.
	WalletStatusActive WalletStatus = "Active"
	// WalletStatusArchived marks a retired wallet.
	WalletStatusArchived WalletStatus = "Archived"
)

// SigningKey describes the key backing a custodial wallet.
type SigningKey struct {
	Scheme    string `json:"scheme"`
	Curve     string `json:"curve"`
	PublicKey string `json:"publicKey"`
}

// Wallet is one custody provider managed key. It is created and populated by
// the provider and read-only to this service, except that the connector clears
// the address on disconnect.
type Wallet struct {
	ID          string       `json:"id"`
	Network     string       `json:"network"`
	Address     string       `json:"address,omitempty"`
	SigningKey  SigningKey   `json:"signingKey"`
	Status      WalletStatus `json:"status"`
	DateCreated string       `json:"dateCreated,omitempty"`
	Name        string       `json:"name,omitempty"`
	Custodial   bool         `json:"custodial"`
	Tags        []string     `json:"tags"`
}

// ListWalletsResponse is the paginated wallet list of the custody provider.
type ListWalletsResponse struct {
	Items []*Wallet `json:"items"`
}

// SignatureKindMessage tags a plain message signing request.
const SignatureKindMessage = "Message"

// SignatureRequestBody is the provider-agnostic signing request body. The
// custody provider pairs the issued challenge with this exact body, so the
// completion call must echo it back unchanged.
type SignatureRequestBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Challenge is the opaque server-issued challenge that authorizes one signing
// operation. Only the challenge identifier is interpreted by this service, the
// remainder is passed through verbatim to the authenticator.
type Challenge struct {
	ChallengeIdentifier string
	Raw                 json.RawMessage
}

// UnmarshalJSON keeps the raw challenge and extracts the identifier needed
// for the completion call.
func (c *Challenge) UnmarshalJSON(data []byte) error {
	var envelope struct {
		ChallengeIdentifier string `json:"challengeIdentifier"`
	}

	if err := json.Unmarshal(data, &envelope); err != nil {
		return errors.Wrap(err, "failed to unmarshal challenge")
	}

	c.ChallengeIdentifier = envelope.ChallengeIdentifier
	c.Raw = append(c.Raw[:0], data...)

	return nil
}

// MarshalJSON renders the challenge verbatim as received.
func (c Challenge) MarshalJSON() ([]byte, error) {
	if len(c.Raw) == 0 {
		return []byte("null"), nil
	}

	return c.Raw, nil
}

// SignedChallenge authorizes the completion of a signing flow with the
// passkey assertion produced for the challenge.
type SignedChallenge struct {
	ChallengeIdentifier string          `json:"challengeIdentifier"`
	FirstFactor         json.RawMessage `json:"firstFactor"`
}

// Signature is the final encoded signature.
type Signature struct {
	Encoded string `json:"encoded"`
}

// SignatureResult is the custody provider's completion response.
type SignatureResult struct {
	ID          string               `json:"id"`
	WalletID    string               `json:"walletId"`
	Status      string               `json:"status"`
	RequestBody SignatureRequestBody `json:"requestBody"`
	Signature   Signature            `json:"signature"`
}
