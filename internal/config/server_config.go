package config

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EchoServer holds the echo specific configuration.
type EchoServer struct {
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableLoggerMiddleware         bool
	EnableMetricsMiddleware        bool
}

// LoggerServer holds the logging configuration.
type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	LogRequestBody     bool
	LogRequestHeader   bool
	LogResponseBody    bool
	PrettyPrintConsole bool
}

// CustodyProvider configures the upstream custody provider API
// (wallet listing, signature request lifecycle).
type CustodyProvider struct {
	BaseURL       string
	AppID         string
	ClientTimeout time.Duration
}

// IdentityProvider configures the upstream identity provider API
// (delegated login/registration, logout).
type IdentityProvider struct {
	BaseURL        string
	AppID          string
	ClientTimeout  time.Duration
	DefaultNetwork string
}

// AuthServer configures the cookie based session handling.
type AuthServer struct {
	CookieName       string
	CookieMaxAge     time.Duration
	CookieSecure     bool
	CookieHTTPOnly   bool
	ManagementSecret string
}

// WalletsServer configures the wallet listing cache.
type WalletsServer struct {
	CacheTTL time.Duration
}

// LocalStateServer configures the persisted connector state store.
type LocalStateServer struct {
	Path     string
	InMemory bool
}

// ConnectorServer holds the defaults for constructed wallet connectors.
type ConnectorServer struct {
	DefaultChainID int64
}

// Server is the central configuration struct, resolved once at startup from ENV.
type Server struct {
	Echo       EchoServer
	Logger     LoggerServer
	Custody    CustodyProvider
	Identity   IdentityProvider
	Auth       AuthServer
	Wallets    WalletsServer
	LocalState LocalStateServer
	Connector  ConnectorServer
}

// DefaultServiceConfigFromEnv returns the server config as parsed from the environment.
// Every value carries a sane default for local development.
func DefaultServiceConfigFromEnv() Server {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_ECHO_LISTEN_ADDRESS", ":8080")
	v.SetDefault("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true)
	v.SetDefault("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true)
	v.SetDefault("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true)
	v.SetDefault("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true)
	v.SetDefault("SERVER_ECHO_ENABLE_METRICS_MIDDLEWARE", true)

	v.SetDefault("SERVER_LOGGER_LEVEL", "debug")
	v.SetDefault("SERVER_LOGGER_REQUEST_LEVEL", "debug")
	v.SetDefault("SERVER_LOGGER_LOG_REQUEST_BODY", false)
	v.SetDefault("SERVER_LOGGER_LOG_REQUEST_HEADER", false)
	v.SetDefault("SERVER_LOGGER_LOG_RESPONSE_BODY", false)
	v.SetDefault("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false)

	v.SetDefault("SERVER_CUSTODY_BASE_URL", "https://api.custody.example.com")
	v.SetDefault("SERVER_CUSTODY_APP_ID", "")
	v.SetDefault("SERVER_CUSTODY_CLIENT_TIMEOUT", 30*time.Second)

	v.SetDefault("SERVER_IDENTITY_BASE_URL", "https://api.custody.example.com")
	v.SetDefault("SERVER_IDENTITY_APP_ID", "")
	v.SetDefault("SERVER_IDENTITY_CLIENT_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_IDENTITY_DEFAULT_NETWORK", "EthereumSepolia")

	v.SetDefault("SERVER_AUTH_COOKIE_NAME", "authToken")
	v.SetDefault("SERVER_AUTH_COOKIE_MAX_AGE", 7*24*time.Hour)
	v.SetDefault("SERVER_AUTH_COOKIE_SECURE", false)
	v.SetDefault("SERVER_AUTH_COOKIE_HTTP_ONLY", true)
	v.SetDefault("SERVER_AUTH_MANAGEMENT_SECRET", "")

	v.SetDefault("SERVER_WALLETS_CACHE_TTL", 30*time.Second)

	v.SetDefault("SERVER_LOCAL_STATE_PATH", "/tmp/go-custody-wallet/state")
	v.SetDefault("SERVER_LOCAL_STATE_IN_MEMORY", false)

	v.SetDefault("SERVER_CONNECTOR_DEFAULT_CHAIN_ID", int64(11155111))

	return Server{
		Echo: EchoServer{
			ListenAddress:                  v.GetString("SERVER_ECHO_LISTEN_ADDRESS"),
			HideInternalServerErrorDetails: v.GetBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS"),
			EnableRecoverMiddleware:        v.GetBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE"),
			EnableRequestIDMiddleware:      v.GetBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE"),
			EnableLoggerMiddleware:         v.GetBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE"),
			EnableMetricsMiddleware:        v.GetBool("SERVER_ECHO_ENABLE_METRICS_MIDDLEWARE"),
		},
		Logger: LoggerServer{
			Level:              parseLogLevel(v.GetString("SERVER_LOGGER_LEVEL")),
			RequestLevel:       parseLogLevel(v.GetString("SERVER_LOGGER_REQUEST_LEVEL")),
			LogRequestBody:     v.GetBool("SERVER_LOGGER_LOG_REQUEST_BODY"),
			LogRequestHeader:   v.GetBool("SERVER_LOGGER_LOG_REQUEST_HEADER"),
			LogResponseBody:    v.GetBool("SERVER_LOGGER_LOG_RESPONSE_BODY"),
			PrettyPrintConsole: v.GetBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE"),
		},
		Custody: CustodyProvider{
			BaseURL:       v.GetString("SERVER_CUSTODY_BASE_URL"),
			AppID:         v.GetString("SERVER_CUSTODY_APP_ID"),
			ClientTimeout: v.GetDuration("SERVER_CUSTODY_CLIENT_TIMEOUT"),
		},
		Identity: IdentityProvider{
			BaseURL:        v.GetString("SERVER_IDENTITY_BASE_URL"),
			AppID:          v.GetString("SERVER_IDENTITY_APP_ID"),
			ClientTimeout:  v.GetDuration("SERVER_IDENTITY_CLIENT_TIMEOUT"),
			DefaultNetwork: v.GetString("SERVER_IDENTITY_DEFAULT_NETWORK"),
		},
		Auth: AuthServer{
			CookieName:       v.GetString("SERVER_AUTH_COOKIE_NAME"),
			CookieMaxAge:     v.GetDuration("SERVER_AUTH_COOKIE_MAX_AGE"),
			CookieSecure:     v.GetBool("SERVER_AUTH_COOKIE_SECURE"),
			CookieHTTPOnly:   v.GetBool("SERVER_AUTH_COOKIE_HTTP_ONLY"),
			ManagementSecret: v.GetString("SERVER_AUTH_MANAGEMENT_SECRET"),
		},
		Wallets: WalletsServer{
			CacheTTL: v.GetDuration("SERVER_WALLETS_CACHE_TTL"),
		},
		LocalState: LocalStateServer{
			Path:     v.GetString("SERVER_LOCAL_STATE_PATH"),
			InMemory: v.GetBool("SERVER_LOCAL_STATE_IN_MEMORY"),
		},
		Connector: ConnectorServer{
			DefaultChainID: v.GetInt64("SERVER_CONNECTOR_DEFAULT_CHAIN_ID"),
		},
	}
}

func parseLogLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.DebugLevel
	}

	return parsed
}
