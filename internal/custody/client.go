package custody

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

// APIError is returned for non-success upstream responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("custody provider returned status %d: %s", e.StatusCode, e.Body)
}

// IsUnauthorized reports whether the upstream rejected the session token.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Client talks to the external custody provider. All calls are authenticated
// with the end user's delegated session token.
type Client struct {
	baseURL    string
	appID      string
	httpClient *http.Client
}

// NewClient creates a custody provider client from the service config.
func NewClient(cfg config.CustodyProvider) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		appID:   cfg.AppID,
		httpClient: &http.Client{
			Timeout: cfg.ClientTimeout,
		},
	}
}

// ListWallets returns all wallets of the authenticated end user.
func (c *Client) ListWallets(ctx context.Context, authToken string) (*ListWalletsResponse, error) {
	var res ListWalletsResponse
	if err := c.do(ctx, http.MethodGet, "/wallets", authToken, nil, &res); err != nil {
		return nil, errors.Wrap(err, "failed to list wallets")
	}

	return &res, nil
}

// GenerateSignatureInit requests a signing challenge for the given wallet and
// request body. The returned challenge is single-use and paired server-side
// with the exact body passed here.
func (c *Client) GenerateSignatureInit(ctx context.Context, authToken string, walletID string, body SignatureRequestBody) (*Challenge, error) {
	var res Challenge
	path := fmt.Sprintf("/wallets/%s/signatures/init", walletID)
	if err := c.do(ctx, http.MethodPost, path, authToken, body, &res); err != nil {
		return nil, errors.Wrap(err, "failed to init signature request")
	}

	return &res, nil
}

type signatureCompleteRequest struct {
	RequestBody     SignatureRequestBody `json:"requestBody"`
	SignedChallenge SignedChallenge      `json:"signedChallenge"`
}

// GenerateSignatureComplete completes a signing flow. The request body must
// equal the one the challenge was issued for, otherwise the provider rejects
// the request.
func (c *Client) GenerateSignatureComplete(ctx context.Context, authToken string, walletID string, body SignatureRequestBody, signedChallenge SignedChallenge) (*SignatureResult, error) {
	var res SignatureResult
	path := fmt.Sprintf("/wallets/%s/signatures/complete", walletID)
	req := signatureCompleteRequest{
		RequestBody:     body,
		SignedChallenge: signedChallenge,
	}
	if err := c.do(ctx, http.MethodPost, path, authToken, req, &res); err != nil {
		return nil, errors.Wrap(err, "failed to complete signature request")
	}

	return &res, nil
}

func (c *Client) do(ctx context.Context, method string, path string, authToken string, in any, out any) error {
	log := util.LogFromContext(ctx)

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
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
			Str("method", method).
			Str("path", path).
			Int("status", res.StatusCode).
			Msg("Custody provider request failed")

		return &APIError{StatusCode: res.StatusCode, Body: string(resBody)}
	}

	if out != nil {
		if err := json.Unmarshal(resBody, out); err != nil {
			return errors.Wrap(err, "failed to unmarshal response body")
		}
	}

	return nil
}
