// Package version exposes the build identity stamped in at link time
package version

// BuildInfo is the wire shape for /meta/version
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the stamped build identity. The four vars below are set
// through -ldflags -X, for example
// -X 'vidtally/internal/core/version.version=v0.3.1'
func Info() BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	service = "vidtally"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
