package config

import "fmt"

// ModuleName of this service, used in log fields and the CLI help.
const ModuleName = "go-custody-wallet"

// The following vars are automatically injected via -ldflags.
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// GetFormattedBuildArgs returns the build arguments in the form "<module> @ <commit> (<build date>)"
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
