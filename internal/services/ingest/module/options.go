package module

import (
	"vidtally/internal/platform/config"
)

// Options for the ingest module
type Options struct {
	Path      string
	Auto      bool
	BatchSize int
}

// FromConfig builds Options from the IMPORT_ namespace.
// Path may stay empty; callers gate auto-import on it
func FromConfig(cfg config.Conf) Options {
	imp := cfg.Prefix("IMPORT_")
	return Options{
		Path:      imp.MayString("PATH", ""),
		Auto:      imp.MayBool("AUTO", true),
		BatchSize: imp.MayInt("BATCH_SIZE", 500),
	}
}
