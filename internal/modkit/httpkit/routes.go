package httpkit

import "net/http"

// MountUnder scopes mount to a subrouter at prefix, with the module's
// middlewares applied first
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}
