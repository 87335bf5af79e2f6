// Package module wires the ask endpoint into the API using modkit
package module

import (
	"net/http"

	modkit "vidtally/internal/modkit"
	"vidtally/internal/modkit/httpkit"
	str "vidtally/internal/platform/strings"
	askhttp "vidtally/internal/services/api/ask/http"
	"vidtally/internal/services/answer/domain"
)

// Ports declares the injected answer port this API module requires
type Ports struct {
	Ask domain.AskPort
}

// Module implements the ask API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	ask domain.AskPort
}

// New constructs the ask module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("ask"),
		modkit.WithPrefix("/ask"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Ask == nil {
		panic("ask API module requires the Ask port (from services/answer)")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		ask:       injected.Ask,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		askhttp.Register(r, m.ask)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns nothing, the ask module only consumes the answer port
func (m *Module) Ports() any { return nil }
