package walletcache_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/walletgrid/go-custody-wallet/internal/custody"
	"github/walletgrid/go-custody-wallet/internal/metrics"
	"github/walletgrid/go-custody-wallet/internal/walletcache"
)

type countingLister struct {
	calls   int32
	release chan struct{}
}

func (l *countingLister) ListWallets(_ context.Context, authToken string) (*custody.ListWalletsResponse, error) {
	atomic.AddInt32(&l.calls, 1)

	if l.release != nil {
		<-l.release
	}

	return &custody.ListWalletsResponse{
		Items: []*custody.Wallet{
			{
				ID:      "wa-1vr89-07nqd",
				Network: "EthereumSepolia",
				Address: "0x8A90CAb2b38dba80c64b7734e58Ee1dB38B8992e",
				Status:  custody.WalletStatusActive,
			},
		},
	}, nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func TestListServesFromCacheWithinTTL(t *testing.T) {
	lister := &countingLister{}
	clock := &fakeClock{now: time.Now()}
	cache := walletcache.NewService(lister, clock, 30*time.Second, metrics.New())

	first, err := cache.List(context.Background(), "token-a")
	require.NoError(t, err)
	require.Len(t, first.Items, 1)

	second, err := cache.List(context.Background(), "token-a")
	require.NoError(t, err)
	assert.Same(t, first, second)

	assert.EqualValues(t, 1, atomic.LoadInt32(&lister.calls))
}

func TestListRefreshesAfterTTL(t *testing.T) {
	lister := &countingLister{}
	clock := &fakeClock{now: time.Now()}
	cache := walletcache.NewService(lister, clock, 30*time.Second, metrics.New())

	_, err := cache.List(context.Background(), "token-a")
	require.NoError(t, err)

	clock.Advance(31 * time.Second)

	_, err = cache.List(context.Background(), "token-a")
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&lister.calls))
}

func TestListKeysPerSession(t *testing.T) {
	lister := &countingLister{}
	clock := &fakeClock{now: time.Now()}
	cache := walletcache.NewService(lister, clock, 30*time.Second, metrics.New())

	_, err := cache.List(context.Background(), "token-a")
	require.NoError(t, err)

	_, err = cache.List(context.Background(), "token-b")
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&lister.calls))
}

func TestInvalidateDropsEntries(t *testing.T) {
	lister := &countingLister{}
	clock := &fakeClock{now: time.Now()}
	cache := walletcache.NewService(lister, clock, 30*time.Second, metrics.New())

	_, err := cache.List(context.Background(), "token-a")
	require.NoError(t, err)

	cache.Invalidate()

	_, err = cache.List(context.Background(), "token-a")
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&lister.calls))
}

func TestListCoalescesConcurrentRefreshes(t *testing.T) {
	lister := &countingLister{release: make(chan struct{})}
	clock := &fakeClock{now: time.Now()}
	cache := walletcache.NewService(lister, clock, 30*time.Second, metrics.New())

	const callers = 8

	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = cache.List(context.Background(), "token-a")
		}(i)
	}

	// let all callers pile up on the single in-flight refresh
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&lister.calls) == 1
	}, 2*time.Second, 10*time.Millisecond)

	close(lister.release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
	}

	assert.EqualValues(t, 1, atomic.LoadInt32(&lister.calls))
}
