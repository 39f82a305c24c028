package wallets_test

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/walletgrid/go-custody-wallet/internal/api"
	"github/walletgrid/go-custody-wallet/internal/custody"
	"github/walletgrid/go-custody-wallet/internal/test"
	"github/walletgrid/go-custody-wallet/internal/types"
)

func TestPostSignatureComplete(t *testing.T) {
	messageHex := hex.EncodeToString([]byte("hello"))

	custodyStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wallets/wa-1vr89-07nqd/signatures/complete", r.URL.Path)

		var body struct {
			RequestBody     custody.SignatureRequestBody `json:"requestBody"`
			SignedChallenge custody.SignedChallenge      `json:"signedChallenge"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		// the body reaches the provider exactly as issued by the init call
		assert.Equal(t, custody.SignatureKindMessage, body.RequestBody.Kind)
		assert.Equal(t, messageHex, body.RequestBody.Message)
		assert.Equal(t, "ch-59e8c-ab3f2", body.SignedChallenge.ChallengeIdentifier)

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(custody.SignatureResult{
			ID:          "sig-3nw0p-bkl2q",
			WalletID:    "wa-1vr89-07nqd",
			Status:      "Signed",
			RequestBody: body.RequestBody,
			Signature:   custody.Signature{Encoded: "0xdeadbeef"},
		}))
	}))
	defer custodyStub.Close()

	cfg := test.DefaultTestServerConfig(t)
	cfg.Custody.BaseURL = custodyStub.URL

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/wallets/signatures/complete", test.GenericPayload{
			"walletId": "wa-1vr89-07nqd",
			"requestBody": map[string]any{
				"kind":    "Message",
				"message": messageHex,
			},
			"signedChallenge": map[string]any{
				"challengeIdentifier": "ch-59e8c-ab3f2",
				"firstFactor":         map[string]any{"credentialAssertion": map[string]any{}},
			},
		}, test.HeadersWithSessionCookie(s, "token-a"))

		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.PostSignatureCompleteResponse
		test.ParseResponseBody(t, res, &response)

		assert.Equal(t, "sig-3nw0p-bkl2q", *response.ID)
		assert.Equal(t, "Signed", *response.Status)
		assert.Equal(t, "0xdeadbeef", *response.Signature.Encoded)

		// the response surfaces the message back in plaintext
		assert.Equal(t, "hello", *response.RequestBody.Message)
	})
}

func TestPostSignatureCompleteUpstreamRejects(t *testing.T) {
	custodyStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// e.g. a reused challenge or a tampered request body
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"request body mismatch"}`))
	}))
	defer custodyStub.Close()

	cfg := test.DefaultTestServerConfig(t)
	cfg.Custody.BaseURL = custodyStub.URL

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/wallets/signatures/complete", test.GenericPayload{
			"walletId": "wa-1vr89-07nqd",
			"requestBody": map[string]any{
				"kind":    "Message",
				"message": "74616d7065726564",
			},
			"signedChallenge": map[string]any{
				"challengeIdentifier": "ch-59e8c-ab3f2",
				"firstFactor":         map[string]any{},
			},
		}, test.HeadersWithSessionCookie(s, "token-a"))

		require.Equal(t, http.StatusBadGateway, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeUPSTREAMUNAVAILABLE, *response.Type)
	})
}

func TestPostSignatureCompleteValidation(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/wallets/signatures/complete", test.GenericPayload{
			"walletId": "wa-1vr89-07nqd",
		}, test.HeadersWithSessionCookie(s, "token-a"))

		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}
