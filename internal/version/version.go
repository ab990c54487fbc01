package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/typst-community/utpm/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/typst-community/utpm/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/typst-community/utpm/internal/version.Date={{.Date}}
)

// String is what `utpm --version` prints after the program name.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
