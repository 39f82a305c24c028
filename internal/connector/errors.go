package connector

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrAddressUnavailable is returned for operations on a wallet whose
	// address is absent, either never provisioned or cleared by disconnect.
	ErrAddressUnavailable = errors.New("wallet address unavailable")

	// ErrUserCancelled is returned when the user aborts the passkey ceremony.
	ErrUserCancelled = errors.New("user cancelled passkey ceremony")

	// ErrSigningBusy is returned when a sign request is issued while another
	// one is still in flight on the same wallet. The custody provider pairs
	// one challenge to one completion, interleaving two sessions against the
	// same wallet risks a completion being matched to the wrong challenge.
	ErrSigningBusy = errors.New("signing already in flight for wallet")

	// ErrConnectorBusy is returned when an operation conflicts with an
	// in-flight disconnect.
	ErrConnectorBusy = errors.New("connector is busy")

	// ErrInvalidParams is returned for malformed provider request params.
	ErrInvalidParams = errors.New("invalid request params")
)

// UnsupportedMethodError is returned for provider methods outside the minimal
// supported surface. The provider never silently no-ops.
type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("method %s not supported by custodial provider", e.Method)
}

// AccountMismatchError is returned when a sign request targets an account
// other than the wallet's own address.
type AccountMismatchError struct {
	Requested string
	Wallet    string
}

func (e *AccountMismatchError) Error() string {
	return fmt.Sprintf("account mismatch: requested %s, wallet holds %s", e.Requested, e.Wallet)
}

// SignPhase identifies the failed phase of the two-phase sign protocol.
type SignPhase string

const (
	// SignPhaseInit is the challenge issuance phase.
	SignPhaseInit SignPhase = "init"
	// SignPhaseComplete is the signature completion phase.
	SignPhaseComplete SignPhase = "complete"
)

// SigningError wraps a failed phase of the remote sign protocol. Callers
// deciding on retries must restart the whole flow from init, challenges are
// single-use.
type SigningError struct {
	Phase SignPhase
	Err   error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signing failed during %s phase: %v", e.Phase, e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}
