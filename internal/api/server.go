package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github/walletgrid/go-custody-wallet/internal/config"
	"github/walletgrid/go-custody-wallet/internal/custody"
	"github/walletgrid/go-custody-wallet/internal/identity"
	"github/walletgrid/go-custody-wallet/internal/localstate"
	"github/walletgrid/go-custody-wallet/internal/metrics"
	"github/walletgrid/go-custody-wallet/internal/util"
	"github/walletgrid/go-custody-wallet/internal/walletcache"
)

// CustodyService covers the wallet-provider operations the handlers need.
type CustodyService interface {
	ListWallets(ctx context.Context, authToken string) (*custody.ListWalletsResponse, error)
	GenerateSignatureInit(ctx context.Context, authToken string, walletID string, body custody.SignatureRequestBody) (*custody.Challenge, error)
	GenerateSignatureComplete(ctx context.Context, authToken string, walletID string, body custody.SignatureRequestBody, signed custody.SignedChallenge) (*custody.SignatureResult, error)
}

// IdentityService covers the end-user authentication operations against the
// wallet provider.
type IdentityService interface {
	DelegatedLogin(ctx context.Context, username string) (*identity.LoginResult, error)
	CreateRegistrationChallenge(ctx context.Context, username string) (*identity.RegistrationChallenge, error)
	RegisterEndUser(ctx context.Context, temporaryAuthenticationToken string, firstFactorCredential json.RawMessage, network string) (json.RawMessage, error)
	Logout(ctx context.Context, authToken string, allSessions bool) error
}

type Router struct {
	Routes       []*echo.Route
	Root         *echo.Group
	Management   *echo.Group
	APIV1Auth    *echo.Group
	APIV1Wallets *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config   config.Server
	Clock    time2.Clock
	Custody  CustodyService
	Identity IdentityService
	Wallets  *walletcache.Service
	Local    *localstate.Service
	Metrics  *metrics.Service
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	clock time2.Clock,
	custodyService CustodyService,
	identityService IdentityService,
	wallets *walletcache.Service,
	local *localstate.Service,
	metrics *metrics.Service,
) *Server {
	return &Server{
		Config:   cfg,
		Clock:    clock,
		Custody:  custodyService,
		Identity: identityService,
		Wallets:  wallets,
		Local:    local,
		Metrics:  metrics,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Local != nil {
		log.Debug().Msg("Closing local state store")

		if err := s.Local.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close local state store")
			errs = append(errs, err)
		}
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
