package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github/walletgrid/go-custody-wallet/internal/api"
)

// GenericPayload is a JSON request body assembled inline in tests.
type GenericPayload map[string]any

func (g GenericPayload) Reader(t *testing.T) *bytes.Reader {
	t.Helper()

	b, err := json.Marshal(g)
	require.NoError(t, err)

	return bytes.NewReader(b)
}

// PerformRequest runs a request against the server's echo instance and
// returns the response recorder. A non-nil body is sent as JSON.
func PerformRequest(t *testing.T, s *api.Server, method string, path string, body GenericPayload, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyReader = body.Reader(t)
	}

	return PerformRequestWithRawBody(t, s, method, path, bodyReader, headers)
}

// PerformRequestWithRawBody runs a request with the given raw body reader.
func PerformRequestWithRawBody(t *testing.T, s *api.Server, method string, path string, body io.Reader, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if headers != nil {
		req.Header = headers
	}

	if body != nil && len(req.Header.Get(echo.HeaderContentType)) == 0 {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	res := httptest.NewRecorder()
	s.Echo.ServeHTTP(res, req)

	return res
}

// HeadersWithSessionCookie returns request headers carrying the session
// cookie the auth middleware picks the provider token from.
func HeadersWithSessionCookie(s *api.Server, token string) http.Header {
	headers := http.Header{}
	headers.Set("Cookie", (&http.Cookie{Name: s.Config.Auth.CookieName, Value: token}).String())

	return headers
}

// ParseResponseBody unmarshals the recorded response body into the target.
func ParseResponseBody(t *testing.T, res *httptest.ResponseRecorder, target any) {
	t.Helper()

	err := json.Unmarshal(res.Body.Bytes(), target)
	require.NoError(t, err)
}
