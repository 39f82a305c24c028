package connector

import (
	"context"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/walletgrid/go-custody-wallet/internal/custody"
)

// Provider methods supported by the custodial provider.
const (
	MethodEthAccounts  = "eth_accounts"
	MethodPersonalSign = "personal_sign"
)

// Provider is the minimal wallet RPC surface consumed by chain interaction
// libraries: a single request entry point dispatching on the method name.
type Provider interface {
	Request(ctx context.Context, method string, params []any) (any, error)
}

// CustodialProvider impersonates a standard EVM wallet provider for exactly
// one custodial wallet. Every private key operation is remote: personal_sign
// drives a signing session through the two-phase protocol and the passkey
// ceremony, nothing is signed locally.
type CustodialProvider struct {
	wallet        *custody.Wallet
	signing       *SigningClient
	authenticator Authenticator

	mu       sync.Mutex
	inFlight bool
}

var _ Provider = (*CustodialProvider)(nil)

// NewCustodialProvider creates a provider bound to the given wallet.
func NewCustodialProvider(wallet *custody.Wallet, signing *SigningClient, authenticator Authenticator) *CustodialProvider {
	return &CustodialProvider{
		wallet:        wallet,
		signing:       signing,
		authenticator: authenticator,
	}
}

// Request dispatches a wallet RPC call. Unsupported methods fail with
// UnsupportedMethodError rather than silently no-oping.
func (p *CustodialProvider) Request(ctx context.Context, method string, params []any) (any, error) {
	switch method {
	case MethodEthAccounts:
		return p.accounts()
	case MethodPersonalSign:
		return p.personalSign(ctx, params)
	default:
		return nil, &UnsupportedMethodError{Method: method}
	}
}

func (p *CustodialProvider) accounts() (any, error) {
	if p.wallet.Address == "" {
		return nil, ErrAddressUnavailable
	}

	return []string{NormalizeAddress(p.wallet.Address)}, nil
}

// personalSign takes [message, account] params. The account must match the
// wallet's own address, the provider never signs for a foreign account. Any
// failing stage aborts the whole call with that stage's error; partial
// progress is discarded, there is no session resumption.
func (p *CustodialProvider) personalSign(ctx context.Context, params []any) (any, error) {
	message, account, err := parsePersonalSignParams(params)
	if err != nil {
		return nil, err
	}

	if p.wallet.Address == "" {
		return nil, ErrAddressUnavailable
	}

	if !strings.EqualFold(account, p.wallet.Address) {
		return nil, &AccountMismatchError{Requested: account, Wallet: p.wallet.Address}
	}

	if err := p.acquireSignSlot(); err != nil {
		return nil, err
	}
	defer p.releaseSignSlot()

	initResult, err := p.signing.InitSign(ctx, p.wallet.ID, decodeSignMessage(message))
	if err != nil {
		return nil, err
	}

	assertion, err := p.authenticator.SignChallenge(ctx, &initResult.Challenge)
	if err != nil {
		if errors.Is(err, ErrUserCancelled) || errors.Is(err, context.Canceled) {
			return nil, errors.Wrap(ErrUserCancelled, err.Error())
		}

		return nil, errors.Wrap(err, "failed to sign challenge")
	}

	signedChallenge := custody.SignedChallenge{
		ChallengeIdentifier: initResult.Challenge.ChallengeIdentifier,
		FirstFactor:         assertion,
	}

	result, err := p.signing.CompleteSign(ctx, p.wallet.ID, initResult.RequestBody, signedChallenge)
	if err != nil {
		return nil, err
	}

	return result.Signature.Encoded, nil
}

// acquireSignSlot enforces one in-flight signing session per wallet.
func (p *CustodialProvider) acquireSignSlot() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.inFlight {
		return ErrSigningBusy
	}
	p.inFlight = true

	return nil
}

func (p *CustodialProvider) releaseSignSlot() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.inFlight = false
}

func parsePersonalSignParams(params []any) (message string, account string, err error) {
	if len(params) != 2 {
		return "", "", errors.Wrap(ErrInvalidParams, "personal_sign expects [message, account]")
	}

	message, ok := params[0].(string)
	if !ok {
		return "", "", errors.Wrap(ErrInvalidParams, "personal_sign message must be a string")
	}

	account, ok = params[1].(string)
	if !ok {
		return "", "", errors.Wrap(ErrInvalidParams, "personal_sign account must be a string")
	}

	return message, account, nil
}

// decodeSignMessage converts the hex-or-raw personal_sign payload to its
// UTF-8 form. Callers following the standard convention pass hex encoded
// bytes with a 0x prefix; anything that does not decode as hex is treated as
// the raw message.
func decodeSignMessage(message string) string {
	stripped := strings.TrimPrefix(message, "0x")

	decoded, err := hex.DecodeString(stripped)
	if err != nil || len(stripped) == 0 {
		return message
	}

	return string(decoded)
}

// NormalizeAddress returns the EIP-55 checksummed form of the address.
func NormalizeAddress(address string) string {
	return common.HexToAddress(address).Hex()
}
