// Package api assembles the HTTP surface: meta plus ask, with the answer
// worker module behind them
package api

import (
	"vidtally/internal/platform/config"
	"vidtally/internal/platform/logger"
	phttp "vidtally/internal/platform/net/http"
	"vidtally/internal/platform/store"

	"vidtally/internal/modkit"
	"vidtally/internal/modkit/httpkit"
	"vidtally/internal/modkit/module"
	"vidtally/internal/modkit/swaggerkit"

	askmod "vidtally/internal/services/api/ask/module"
	metamod "vidtally/internal/services/api/meta/module"

	answermod "vidtally/internal/services/answer/module"
)

// Options selects what Mount wires up
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount hangs the whole API off r
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// the answer worker owns the Ask port, the api-side ask module only
	// fronts it over HTTP
	answer := answermod.New(deps, answermod.Options{})
	ask := module.MustPortsOf[answermod.Ports](answer).Ask

	askAPI := askmod.New(
		deps,
		modkit.WithPorts(askmod.Ports{
			Ask: ask,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		answer, // mounts no routes, registered for its ports
		askAPI,
	}

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// docs and profiler sit outside /api/v1
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// ports go into the registry under the module name, other
			// modules look them up from there
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
