package router

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github/walletgrid/go-custody-wallet/internal/api"
	"github/walletgrid/go-custody-wallet/internal/api/handlers"
	"github/walletgrid/go-custody-wallet/internal/api/middleware"
	"github/walletgrid/go-custody-wallet/internal/metrics"
)

func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.HideBanner = true

	s.Echo.HTTPErrorHandler = HTTPErrorHandlerWithConfig(HTTPErrorHandlerConfig{
		HideInternalServerErrorDetails: s.Config.Echo.HideInternalServerErrorDetails,
	})

	// enabled prebuilt middleware in order
	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echoMiddleware.Recover())
	} else {
		log.Warn().Msg("Disabling recover middleware due to environment config")
	}

	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(echoMiddleware.RequestID())
	} else {
		log.Warn().Msg("Disabling request ID middleware due to environment config")
	}

	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Level:            s.Config.Logger.RequestLevel,
			LogRequestBody:   s.Config.Logger.LogRequestBody,
			LogRequestHeader: s.Config.Logger.LogRequestHeader,
			LogResponseBody:  s.Config.Logger.LogResponseBody,
		}))
	} else {
		log.Warn().Msg("Disabling logger middleware due to environment config")
	}

	if s.Config.Echo.EnableMetricsMiddleware {
		s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  metrics.Namespace,
			Subsystem:  "http",
			Registerer: s.Metrics.Registry,
		}))
	} else {
		log.Warn().Msg("Disabling metrics middleware due to environment config")
	}

	s.Router = &api.Router{
		Routes: nil, // will be populated by handlers.AttachAllRoutes(s)

		// Unsecured base group
		Root: s.Echo.Group(""),

		// Management endpoints (readiness, metrics)
		Management: s.Echo.Group("/-"),

		// Session endpoints against the upstream identity provider
		APIV1Auth: s.Echo.Group("/api/v1/auth", middleware.AuthToken(s)),

		// Wallet endpoints against the upstream custody provider
		APIV1Wallets: s.Echo.Group("/api/v1/wallets", middleware.AuthToken(s)),
	}

	if s.Config.Echo.EnableMetricsMiddleware {
		s.Router.Management.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: s.Metrics.Registry,
		}))
	}

	handlers.AttachAllRoutes(s)
}
