// Package module implements the answer module
package module

import (
	"net/http"

	"vidtally/internal/core/heuristic"
	"vidtally/internal/modkit"
	"vidtally/internal/modkit/httpkit"
	"vidtally/internal/services/answer/domain"
	"vidtally/internal/services/answer/repo"
	"vidtally/internal/services/answer/service"
	"vidtally/internal/services/translate"
)

// Ports exposed by the answer module
type Ports struct {
	Ask domain.AskPort

	// Scalar evaluates a single query; the selfcheck runner uses it to
	// surface evaluation errors the total Answer path folds into 0
	Scalar domain.ScalarPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	name  string
	ports Ports
}

// New constructs a new answer module
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("answer"),
	}, opts...)...)

	// Merge config + overrides
	cfg := FromConfig(deps.Cfg)
	if overrides.QueryTimeout != 0 {
		cfg.QueryTimeout = overrides.QueryTimeout
	}

	parser, err := heuristic.New()
	if err != nil {
		panic(err)
	}

	// Remote translator only when the adapter is fully configured;
	// otherwise the noop keeps the strategy chain shape without network calls
	topts := translatorOptions(deps.Cfg)
	var tr translate.Translator = translate.NewNoop()
	if topts.APIKey != "" && topts.Model != "" {
		tr = translate.NewOpenRouter(topts)
	}

	scalar := repo.NewScalar(deps.PG, deps.CH, cfg.QueryTimeout)

	m := &Module{deps: deps, name: b.Name}
	m.ports = Ports{
		Ask:    service.New(tr, parser, scalar),
		Scalar: scalar,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
