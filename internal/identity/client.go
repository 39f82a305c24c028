package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github/walletgrid/go-custody-wallet/internal/config"
	"github/walletgrid/go-custody-wallet/internal/util"
)

// APIError is returned for non-success identity provider responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("identity provider returned status %d: %s", e.StatusCode, e.Body)
}

// LoginResult carries the delegated session token issued for an end user.
type LoginResult struct {
	Token string `json:"token"`
}

// RegistrationChallenge is the opaque delegated registration challenge. The
// temporary token is needed to authenticate the completion call, the rest is
// passed through to the client's authenticator verbatim.
type RegistrationChallenge struct {
	TemporaryAuthenticationToken string
	Raw                          json.RawMessage
}

// UnmarshalJSON keeps the raw challenge and extracts the temporary token.
func (c *RegistrationChallenge) UnmarshalJSON(data []byte) error {
	var envelope struct {
		TemporaryAuthenticationToken string `json:"temporaryAuthenticationToken"`
	}

	if err := json.Unmarshal(data, &envelope); err != nil {
		return errors.Wrap(err, "failed to unmarshal registration challenge")
	}

	c.TemporaryAuthenticationToken = envelope.TemporaryAuthenticationToken
	c.Raw = append(c.Raw[:0], data...)

	return nil
}

// MarshalJSON renders the challenge verbatim as received.
func (c RegistrationChallenge) MarshalJSON() ([]byte, error) {
	if len(c.Raw) == 0 {
		return []byte("null"), nil
	}

	return c.Raw, nil
}

// Client talks to the external identity provider handling the delegated
// passkey login and registration flows.
type Client struct {
	baseURL    string
	appID      string
	httpClient *http.Client
}

// NewClient creates an identity provider client from the service config.
func NewClient(cfg config.IdentityProvider) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		appID:   cfg.AppID,
		httpClient: &http.Client{
			Timeout: cfg.ClientTimeout,
		},
	}
}

// DelegatedLogin performs a delegated login on behalf of the end user and
// returns the session token to be stored in the auth cookie.
func (c *Client) DelegatedLogin(ctx context.Context, username string) (*LoginResult, error) {
	req := map[string]string{"username": username}

	var res LoginResult
	if err := c.do(ctx, "/auth/login/delegated", "", req, &res); err != nil {
		return nil, errors.Wrap(err, "failed to perform delegated login")
	}

	return &res, nil
}

// CreateRegistrationChallenge starts a delegated end user registration.
func (c *Client) CreateRegistrationChallenge(ctx context.Context, username string) (*RegistrationChallenge, error) {
	req := map[string]string{
		"kind":  "EndUser",
		"email": username,
	}

	var res RegistrationChallenge
	if err := c.do(ctx, "/auth/registration/delegated", "", req, &res); err != nil {
		return nil, errors.Wrap(err, "failed to create registration challenge")
	}

	return &res, nil
}

type registerEndUserRequest struct {
	FirstFactorCredential json.RawMessage         `json:"firstFactorCredential"`
	Wallets               []registerEndUserWallet `json:"wallets"`
}

type registerEndUserWallet struct {
	Network string `json:"network"`
}

// RegisterEndUser completes a delegated registration, provisioning one wallet
// on the given network for the new end user.
func (c *Client) RegisterEndUser(ctx context.Context, temporaryAuthenticationToken string, firstFactorCredential json.RawMessage, network string) (json.RawMessage, error) {
	req := registerEndUserRequest{
		FirstFactorCredential: firstFactorCredential,
		Wallets:               []registerEndUserWallet{{Network: network}},
	}

	var res json.RawMessage
	if err := c.do(ctx, "/auth/registration/enduser", temporaryAuthenticationToken, req, &res); err != nil {
		return nil, errors.Wrap(err, "failed to register end user")
	}

	return res, nil
}

type logoutRequest struct {
	AllSessions bool `json:"allSessions"`
}

// Logout terminates the authenticated end user's session, or all of their
// sessions when allSessions is set.
func (c *Client) Logout(ctx context.Context, authToken string, allSessions bool) error {
	if err := c.do(ctx, "/auth/logout", authToken, logoutRequest{AllSessions: allSessions}, nil); err != nil {
		return errors.Wrap(err, "failed to logout")
	}

	return nil
}

func (c *Client) do(ctx context.Context, path string, authToken string, in any, out any) error {
	log := util.LogFromContext(ctx)

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.appID != "" {
		req.Header.Set("X-App-ID", c.appID)
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to perform request")
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		log.Debug().
			Str("path", path).
			Int("status", res.StatusCode).
			Msg("Identity provider request failed")

		return &APIError{StatusCode: res.StatusCode, Body: string(resBody)}
	}

	if out != nil {
		if err := json.Unmarshal(resBody, out); err != nil {
			return errors.Wrap(err, "failed to unmarshal response body")
		}
	}

	return nil
}
