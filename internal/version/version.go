package version

// Set with -ldflags "-X github.com/corlevo/corlevo/internal/version.Version=..."
var (
	Version = "dev"
	Date    = "unknown"
)
