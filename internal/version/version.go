// Package version holds build-time metadata injected via ldflags.
package version

// Set at build time, e.g.:
//
//	go build -ldflags "-X github.com/janekbaraniewski/ctxline/internal/version.Version=v0.3.0 \
//	  -X github.com/janekbaraniewski/ctxline/internal/version.CommitHash=$(git rev-parse --short HEAD)"
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String returns "<version> (<commit>)", adding the build date when known.
func String() string {
	s := Version + " (" + CommitHash + ")"
	if BuildDate != "unknown" && BuildDate != "" {
		s += " built " + BuildDate
	}
	return s
}
