package walletcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github/walletgrid/go-custody-wallet/internal/custody"
	"github/walletgrid/go-custody-wallet/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// Lister is the custody provider surface this cache sits in front of.
type Lister interface {
	ListWallets(ctx context.Context, authToken string) (*custody.ListWalletsResponse, error)
}

// Clock is the narrow clock surface the cache needs, satisfied by the
// server's time2.Clock.
type Clock interface {
	Now() time.Time
}

type entry struct {
	wallets   *custody.ListWalletsResponse
	fetchedAt time.Time
}

// Service caches the custodial wallet set per session. Entries expire after
// the configured TTL and the whole cache is invalidated on auth state
// changes. Concurrent refreshes for the same session are coalesced.
type Service struct {
	lister  Lister
	clock   Clock
	ttl     time.Duration
	metrics *metrics.Service

	group singleflight.Group

	mu      sync.Mutex
	entries map[string]entry
}

// NewService creates a wallet listing cache in front of the given lister.
func NewService(lister Lister, clock Clock, ttl time.Duration, m *metrics.Service) *Service {
	return &Service{
		lister:  lister,
		clock:   clock,
		ttl:     ttl,
		metrics: m,
		entries: make(map[string]entry),
	}
}

// List returns the wallet set for the given session token, served from cache
// while fresh.
func (s *Service) List(ctx context.Context, authToken string) (*custody.ListWalletsResponse, error) {
	key := cacheKey(authToken)

	s.mu.Lock()
	cached, ok := s.entries[key]
	if ok && s.clock.Now().Sub(cached.fetchedAt) < s.ttl {
		s.mu.Unlock()
		s.metrics.WalletListCacheHits.Inc()

		return cached.wallets, nil
	}
	s.mu.Unlock()

	res, err, _ := s.group.Do(key, func() (any, error) {
		wallets, err := s.lister.ListWallets(ctx, authToken)
		if err != nil {
			return nil, errors.Wrap(err, "failed to refresh wallet list")
		}

		s.mu.Lock()
		s.entries[key] = entry{wallets: wallets, fetchedAt: s.clock.Now()}
		s.mu.Unlock()

		return wallets, nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.WalletListCacheMisses.Inc()

	wallets, ok := res.(*custody.ListWalletsResponse)
	if !ok {
		return nil, errors.New("unexpected wallet list cache entry type")
	}

	return wallets, nil
}

// Invalidate drops all cached entries. Called whenever the auth state
// changes, a new session must never observe another session's wallet set.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]entry)
}

// cacheKey hashes the session token, the raw token never serves as a map key
// that could end up in debug output.
func cacheKey(authToken string) string {
	sum := sha256.Sum256([]byte(authToken))
	return hex.EncodeToString(sum[:])
}
