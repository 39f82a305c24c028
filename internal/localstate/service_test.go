package localstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/walletgrid/go-custody-wallet/internal/config"
	"github/walletgrid/go-custody-wallet/internal/localstate"
)

func newTestService(t *testing.T) *localstate.Service {
	t.Helper()

	s, err := localstate.NewService(config.LocalStateServer{InMemory: true})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}

func TestLastConnectorRoundTrip(t *testing.T) {
	s := newTestService(t)
	ctx := t.Context()

	last, err := s.LastConnector(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	require.NoError(t, s.SetLastConnector(ctx, "wa-1vr89-07nqd", 11155111))

	last, err = s.LastConnector(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "wa-1vr89-07nqd", last.WalletID)
	assert.EqualValues(t, 11155111, last.ChainID)
	assert.False(t, last.ConnectedAt.IsZero())
}

func TestSetLastConnectorOverwrites(t *testing.T) {
	s := newTestService(t)
	ctx := t.Context()

	require.NoError(t, s.SetLastConnector(ctx, "wa-1vr89-07nqd", 11155111))
	require.NoError(t, s.SetLastConnector(ctx, "wa-4c0mp-88aezz", 1))

	last, err := s.LastConnector(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "wa-4c0mp-88aezz", last.WalletID)
	assert.EqualValues(t, 1, last.ChainID)
}

func TestClearLastConnector(t *testing.T) {
	s := newTestService(t)
	ctx := t.Context()

	// clearing an absent record is fine
	require.NoError(t, s.ClearLastConnector(ctx))

	require.NoError(t, s.SetLastConnector(ctx, "wa-1vr89-07nqd", 11155111))
	require.NoError(t, s.ClearLastConnector(ctx))

	last, err := s.LastConnector(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)
}
