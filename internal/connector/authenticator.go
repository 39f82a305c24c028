package connector

import (
	"context"
	"encoding/json"

	"github/walletgrid/go-custody-wallet/internal/custody"
)

// Authenticator is the opaque passkey capability: given a server-issued
// challenge it produces a signed assertion authorizing the action. The
// ceremony may suspend on user interaction for multiple seconds, callers must
// pass a context and tolerate the latency.
//
// Implementations surface user abortion as ErrUserCancelled (possibly
// wrapped), which the provider propagates to the original caller untouched.
type Authenticator interface {
	SignChallenge(ctx context.Context, challenge *custody.Challenge) (json.RawMessage, error)
}
