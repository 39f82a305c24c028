package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes all collectors of this application.
const Namespace = "custody_wallet"

// Service holds the prometheus collectors of this application, registered on
// a dedicated registry so multiple servers can coexist within one process
// (e.g. in tests).
type Service struct {
	Registry *prometheus.Registry

	Logins                prometheus.Counter
	Logouts               prometheus.Counter
	SignatureInits        *prometheus.CounterVec
	SignatureCompletions  *prometheus.CounterVec
	WalletListCacheHits   prometheus.Counter
	WalletListCacheMisses prometheus.Counter
}

// New creates a metrics service with all collectors registered.
func New() *Service {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Service{
		Registry: registry,
		Logins: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "logins_total",
			Help:      "Number of successful delegated logins.",
		}),
		Logouts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "logouts_total",
			Help:      "Number of logout requests, successful or not.",
		}),
		SignatureInits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "signature_inits_total",
			Help:      "Number of signature init calls by outcome.",
		}, []string{"outcome"}),
		SignatureCompletions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "signature_completions_total",
			Help:      "Number of signature completion calls by outcome.",
		}, []string{"outcome"}),
		WalletListCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "wallet_list_cache_hits_total",
			Help:      "Number of wallet list requests served from cache.",
		}),
		WalletListCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "wallet_list_cache_misses_total",
			Help:      "Number of wallet list requests hitting the custody provider.",
		}),
	}
}

// Outcome labels for the signature counters.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
