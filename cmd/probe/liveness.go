package probe

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/walletgrid/go-custody-wallet/internal/config"
)

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Runs a liveness probe against the local server",
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to parse verbose flag")
			}

			runProbe(probeHealthy, verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Prints the probe response body")

	return cmd
}

type probeTarget int

const (
	probeHealthy probeTarget = iota
	probeReady
)

// runProbe performs the probe request against the locally listening server
// and exits non-zero on any failure, making it usable as a container probe.
func runProbe(target probeTarget, verbose bool) {
	cfg := config.DefaultServiceConfigFromEnv()

	client := &http.Client{Timeout: 5 * time.Second}

	probeURL, err := url.Parse(fmt.Sprintf("http://localhost%s", cfg.Echo.ListenAddress))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse listen address")
	}

	switch target {
	case probeHealthy:
		probeURL.Path = "/-/healthy"
		q := probeURL.Query()
		q.Set("mgmt-secret", cfg.Auth.ManagementSecret)
		probeURL.RawQuery = q.Encode()
	case probeReady:
		probeURL.Path = "/-/ready"
	}

	res, err := client.Get(probeURL.String())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to perform probe request")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read probe response")
	}

	if verbose {
		fmt.Println(string(body))
	}

	if res.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}
