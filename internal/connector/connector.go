package connector

import (
	"context"
	"sync"

	"github/walletgrid/go-custody-wallet/internal/config"
	"github/walletgrid/go-custody-wallet/internal/custody"
	"github/walletgrid/go-custody-wallet/internal/util"
)

// State is the connector lifecycle state.
type State int

const (
	// StateDisconnected is the initial and terminal state.
	StateDisconnected State = iota
	// StateConnecting marks an in-flight connect attempt.
	StateConnecting
	// StateConnected marks an established connection.
	StateConnected
	// StateDisconnecting marks an in-flight teardown.
	StateDisconnecting
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnecting:
		return "disconnecting"
	default:
		return "disconnected"
	}
}

// ConnectResult is the established connection triple handed to the wallet
// connection library.
type ConnectResult struct {
	Accounts []string
	ChainID  int64
	Provider Provider
}

// connectAttempt shares one in-flight connect among concurrent callers.
type connectAttempt struct {
	done   chan struct{}
	result *ConnectResult
	err    error
}

// Connector satisfies the wallet connector contract for exactly one custodial
// wallet and target chain. It owns at most one provider instance, created
// lazily, and moves through an explicit state machine with guarded
// transitions: Disconnected, Connecting, Connected, Disconnecting.
//
// Connect and Disconnect are single-flight per connector. A Connect issued
// while another one is in flight joins the in-flight attempt instead of
// starting a duplicate flow.
type Connector struct {
	wallet         *custody.Wallet
	defaultChainID int64
	signing        *SigningClient
	authenticator  Authenticator
	bridge         *SessionBridge
	hub            *Hub

	mu       sync.Mutex
	state    State
	chainID  int64
	provider *CustodialProvider
	attempt  *connectAttempt
}

// NewFromConfig creates a connector with the configured default chain.
func NewFromConfig(cfg config.ConnectorServer, wallet *custody.Wallet, signing *SigningClient, authenticator Authenticator, bridge *SessionBridge) *Connector {
	return New(wallet, cfg.DefaultChainID, signing, authenticator, bridge)
}

// New creates a connector bound to the given wallet and default chain. The
// session bridge may be nil, in which case disconnect performs only the local
// teardown.
func New(wallet *custody.Wallet, chainID int64, signing *SigningClient, authenticator Authenticator, bridge *SessionBridge) *Connector {
	return &Connector{
		wallet:         wallet,
		defaultChainID: chainID,
		signing:        signing,
		authenticator:  authenticator,
		bridge:         bridge,
		hub:            NewHub(),
		chainID:        chainID,
	}
}

// ID identifies the connector type towards the wallet connection library.
func (c *Connector) ID() string { return "custodial" }

// Name is the human readable connector name.
func (c *Connector) Name() string { return "Custodial Wallet" }

// Ready reports whether the connector can be offered to the user.
func (c *Connector) Ready() bool { return true }

// State returns the current lifecycle state.
func (c *Connector) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Connect establishes the connection and returns the accounts/chain/provider
// triple. A requestedChainID of 0 falls back to the connector's configured
// default chain. Calling Connect while already connected is idempotent: the
// existing triple is returned without side effects or network calls.
func (c *Connector) Connect(ctx context.Context, requestedChainID int64) (*ConnectResult, error) {
	c.mu.Lock()

	switch c.state {
	case StateConnected:
		result := &ConnectResult{
			Accounts: []string{NormalizeAddress(c.wallet.Address)},
			ChainID:  c.chainID,
			Provider: c.provider,
		}
		c.mu.Unlock()

		return result, nil

	case StateConnecting:
		attempt := c.attempt
		c.mu.Unlock()

		select {
		case <-attempt.done:
			return attempt.result, attempt.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}

	case StateDisconnecting:
		c.mu.Unlock()

		return nil, ErrConnectorBusy
	}

	attempt := &connectAttempt{done: make(chan struct{})}
	c.state = StateConnecting
	c.attempt = attempt
	c.mu.Unlock()

	result, err := c.establish(ctx, requestedChainID)

	c.mu.Lock()
	if err != nil {
		// failed connect leaves the connector Disconnected
		c.state = StateDisconnected
	} else {
		c.state = StateConnected
	}
	c.attempt = nil
	attempt.result = result
	attempt.err = err
	c.mu.Unlock()

	if err == nil {
		// emitted before the attempt settles so joiners and a waiting
		// Disconnect observe connect strictly before disconnect
		c.hub.EmitConnect(ConnectPayload{
			Accounts: result.Accounts,
			ChainID:  result.ChainID,
		})
	}

	close(attempt.done)

	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Connector) establish(ctx context.Context, requestedChainID int64) (*ConnectResult, error) {
	log := util.LogFromContext(ctx)

	if c.wallet.Address == "" {
		return nil, ErrAddressUnavailable
	}

	address := NormalizeAddress(c.wallet.Address)

	c.mu.Lock()
	c.wallet.Address = address
	if c.provider == nil {
		c.provider = NewCustodialProvider(c.wallet, c.signing, c.authenticator)
	}
	if requestedChainID != 0 {
		c.chainID = requestedChainID
	} else {
		c.chainID = c.defaultChainID
	}
	provider := c.provider
	chainID := c.chainID
	c.mu.Unlock()

	if c.bridge != nil {
		if err := c.bridge.RememberConnector(ctx, c.wallet.ID, chainID); err != nil {
			log.Warn().Err(err).Str("wallet_id", c.wallet.ID).Msg("Failed to persist last connector state")
		}
	}

	return &ConnectResult{
		Accounts: []string{address},
		ChainID:  chainID,
		Provider: provider,
	}, nil
}

// Disconnect tears the connection down. It always performs, in order: the
// best-effort remote session termination, clearing the wallet address,
// dropping the provider instance and connected flag, clearing persisted
// last-connector state, and emitting the disconnect event. A Disconnect
// issued while a Connect is in flight waits for that attempt to settle and
// then tears down the established connection. Local state is the
// source of truth for usability, a failing logout call never blocks teardown,
// which is why Disconnect has no error return.
func (c *Connector) Disconnect(ctx context.Context) {
	c.mu.Lock()
	for c.state == StateConnecting {
		// await the in-flight connect so teardown never interleaves with it
		attempt := c.attempt
		c.mu.Unlock()

		select {
		case <-attempt.done:
		case <-ctx.Done():
			return
		}

		c.mu.Lock()
	}
	if c.state == StateDisconnected || c.state == StateDisconnecting {
		c.mu.Unlock()
		return
	}
	c.state = StateDisconnecting
	c.mu.Unlock()

	log := util.LogFromContext(ctx)

	if c.bridge != nil {
		if err := c.bridge.Logout(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to terminate remote session, proceeding with local teardown")
		}
	}

	c.mu.Lock()
	c.wallet.Address = ""
	c.provider = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if c.bridge != nil {
		if err := c.bridge.ClearPersisted(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to clear persisted connector state")
		}
	}

	c.hub.EmitDisconnect()
}

// Accounts returns the connected account list. Once disconnected it returns
// an empty slice, never an error; consumers treat empty accounts as the
// disconnect signal.
func (c *Connector) Accounts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateConnected || c.wallet.Address == "" {
		return []string{}
	}

	return []string{NormalizeAddress(c.wallet.Address)}
}

// ChainID returns the currently resolved target chain.
func (c *Connector) ChainID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.chainID
}

// IsAuthorized reports whether the connector holds an established connection.
func (c *Connector) IsAuthorized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state == StateConnected
}

// GetProvider returns the provider instance, creating it lazily.
func (c *Connector) GetProvider() Provider {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider == nil {
		c.provider = NewCustodialProvider(c.wallet, c.signing, c.authenticator)
	}

	return c.provider
}

// OnConnect registers a connect listener, returning its subscription id.
func (c *Connector) OnConnect(fn func(ConnectPayload)) int { return c.hub.OnConnect(fn) }

// OnDisconnect registers a disconnect listener, returning its subscription id.
func (c *Connector) OnDisconnect(fn func()) int { return c.hub.OnDisconnect(fn) }

// OnChange registers a change listener, returning its subscription id.
func (c *Connector) OnChange(fn func(ChangePayload)) int { return c.hub.OnChange(fn) }

// Off removes a listener registered for the given event.
func (c *Connector) Off(event EventType, id int) { c.hub.Off(event, id) }
