package modkit

import (
	phttp "vidtally/internal/platform/net/http"
)

// Module is what the binaries mount: routes plus a port set other modules
// can reach. Three methods on purpose, anything more couples modules
type Module interface {
	// MountRoutes attaches the module's HTTP routes to r
	MountRoutes(r phttp.Router)
	// Ports exposes the module's port set for cross-module wiring
	Ports() any

	// Name identifies the module in logs and the registry
	Name() string
}

// Builder is the New(deps, opts...) shape every module constructor follows
type Builder func(Deps, ...Option) Module
