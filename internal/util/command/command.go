package command

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/walletgrid/go-custody-wallet/internal/api"
	"github/walletgrid/go-custody-wallet/internal/api/router"
	"github/walletgrid/go-custody-wallet/internal/config"
)

// NewSubcommandGroup returns a cobra command grouping the given subcommands,
// failing with usage help when invoked without one.
func NewSubcommandGroup(use string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use: use,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Error().Err(err).Msg("Failed to print help")
			}

			os.Exit(1)
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// WithServer initializes a fully wired server (without starting to listen),
// runs the closure against it and shuts it down again. Used by one-off
// maintenance subcommands.
func WithServer(ctx context.Context, cfg config.Server, closure func(ctx context.Context, s *api.Server) error) error {
	applyLoggerConfig(cfg)

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize server")
		return err
	}

	router.Init(s)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
			log.Error().Errs("errors", errs).Msg("Failed to shutdown server")
		}
	}()

	return closure(ctx, s)
}

func applyLoggerConfig(cfg config.Server) {
	zerolog.SetGlobalLevel(cfg.Logger.Level)

	if cfg.Logger.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = time.RFC3339
		}))
	}
}
