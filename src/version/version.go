package version

import "fmt"

// Set with -ldflags "-X github.com/bcgov/wordpress-scripts/src/version.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String is the banner printed by `wpscripts version`.
func String() string {
	return fmt.Sprintf("wpscripts %s (commit %s, built %s)", Version, Commit, BuildDate)
}
