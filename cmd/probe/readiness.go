package probe

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs a readiness probe against the local server",
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to parse verbose flag")
			}

			runProbe(probeReady, verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Prints the probe response body")

	return cmd
}
