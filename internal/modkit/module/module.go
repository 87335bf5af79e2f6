// Package module holds the module contract plus the ports registry. It is
// a sibling of modkit so a module can export its ports type without knots
package module

import (
	phttp "vidtally/internal/platform/net/http"
)

// Module mirrors modkit.Module for packages that must not import modkit
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
