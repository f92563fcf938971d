package buildinfo

import "runtime"

// Set with -ldflags "-X github.com/yndnr/respkv/internal/infra/buildinfo.Version=v0.1.0".
var (
	// Version is the semantic version.
	Version = "dev"

	// Commit is the git commit hash.
	Commit = "unknown"

	// BuildTime is the build timestamp.
	BuildTime = "unknown"

	// GoVersion defaults to the running toolchain's version.
	GoVersion = runtime.Version()
)

// Info contains build information.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// Get returns the build information.
// The admin HTTP listener serves it as JSON on /version.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
	}
}

// String returns the one-line form printed by --version.
func String() string {
	return "respkv " + Version + " (" + Commit + ", " + GoVersion + ") built at " + BuildTime
}
