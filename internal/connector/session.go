package connector

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

const logoutPath = "/api/v1/auth/logout"

// LastConnectorStore persists which connector was last used, so the UI can
// restore it across page loads. Cleared exclusively on disconnect.
type LastConnectorStore interface {
	SetLastConnector(ctx context.Context, walletID string, chainID int64) error
	ClearLastConnector(ctx context.Context) error
}

// SessionBridge keeps the connector's notion of connected consistent with
// the server-side session. It only acts at connection boundaries: it is not
// involved in login or registration.
type SessionBridge struct {
	baseURL    string
	httpClient *http.Client
	store      LastConnectorStore
}

// NewSessionBridge creates a bridge against the given API base URL. The http
// client carries the session cookie; a nil client falls back to
// http.DefaultClient. The store may be nil if no local persistence exists.
func NewSessionBridge(baseURL string, httpClient *http.Client, store LastConnectorStore) *SessionBridge {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &SessionBridge{
		baseURL:    baseURL,
		httpClient: httpClient,
		store:      store,
	}
}

// Logout terminates the server-side session. Callers treat a failure as
// non-fatal, local teardown must complete regardless.
func (b *SessionBridge) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+logoutPath, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create logout request")
	}

	res, err := b.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to perform logout request")
	}
	defer res.Body.Close()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("logout endpoint returned status %d", res.StatusCode)
	}

	return nil
}

// RememberConnector persists the connected wallet and chain as the last-used
// connector.
func (b *SessionBridge) RememberConnector(ctx context.Context, walletID string, chainID int64) error {
	if b.store == nil {
		return nil
	}

	return b.store.SetLastConnector(ctx, walletID, chainID)
}

// ClearPersisted removes all persisted last-connector state.
func (b *SessionBridge) ClearPersisted(ctx context.Context) error {
	if b.store == nil {
		return nil
	}

	return b.store.ClearLastConnector(ctx)
}
