package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github/walletgrid/go-custody-wallet/internal/custody"
)

const (
	signatureInitPath     = "/api/v1/wallets/signatures/init"
	signatureCompletePath = "/api/v1/wallets/signatures/complete"
)

// SigningClient drives the two-phase remote sign protocol against the
// signing endpoints of the pass-through API. It is stateless, the pairing of
// challenge and request body lives with the custody provider.
//
// The client performs no retries. A retry must re-run the whole
// init/assert/complete sequence, issued challenges are single-use.
type SigningClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSigningClient creates a signing client against the given API base URL.
// The http client carries the session cookie and any caller-configured
// timeout; a nil client falls back to http.DefaultClient.
func NewSigningClient(baseURL string, httpClient *http.Client) *SigningClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &SigningClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// InitSignResult pairs the server-issued challenge with the exact request
// body that must be echoed back unchanged in the completion call.
type InitSignResult struct {
	RequestBody custody.SignatureRequestBody
	Challenge   custody.Challenge
}

type initSignRequest struct {
	WalletID string `json:"walletId"`
	Message  string `json:"message"`
}

type initSignResponse struct {
	RequestBody custody.SignatureRequestBody `json:"requestBody"`
	Challenge   custody.Challenge            `json:"challenge"`
}

// InitSign submits the UTF-8 plaintext message for signing by the given
// wallet and returns the challenge to be signed by the user's authenticator.
func (c *SigningClient) InitSign(ctx context.Context, walletID string, message string) (*InitSignResult, error) {
	req := initSignRequest{
		WalletID: walletID,
		Message:  message,
	}

	var res initSignResponse
	if err := c.post(ctx, signatureInitPath, req, &res); err != nil {
		return nil, &SigningError{Phase: SignPhaseInit, Err: err}
	}

	return &InitSignResult{
		RequestBody: res.RequestBody,
		Challenge:   res.Challenge,
	}, nil
}

type completeSignRequest struct {
	WalletID        string                       `json:"walletId"`
	RequestBody     custody.SignatureRequestBody `json:"requestBody"`
	SignedChallenge custody.SignedChallenge      `json:"signedChallenge"`
}

// CompleteSign finishes the sign flow with the caller-produced signed
// challenge. The request body must be the one returned by InitSign, the
// custody provider rejects a body differing from the one the challenge was
// issued for.
func (c *SigningClient) CompleteSign(ctx context.Context, walletID string, requestBody custody.SignatureRequestBody, signedChallenge custody.SignedChallenge) (*custody.SignatureResult, error) {
	req := completeSignRequest{
		WalletID:        walletID,
		RequestBody:     requestBody,
		SignedChallenge: signedChallenge,
	}

	var res custody.SignatureResult
	if err := c.post(ctx, signatureCompletePath, req, &res); err != nil {
		return nil, &SigningError{Phase: SignPhaseComplete, Err: err}
	}

	return &res, nil
}

func (c *SigningClient) post(ctx context.Context, path string, in any, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "failed to marshal request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Content-Type", "application/json")

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
		return errors.Errorf("signing endpoint returned status %d: %s", res.StatusCode, string(resBody))
	}

	if err := json.Unmarshal(resBody, out); err != nil {
		return errors.Wrap(err, "failed to unmarshal response body")
	}

	return nil
}
