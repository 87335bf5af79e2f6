// Package module implements the ingest module
package module

import (
	"net/http"

	"vidtally/internal/adapters/ingest/dataset"
	"vidtally/internal/modkit"
	"vidtally/internal/modkit/httpkit"
	"vidtally/internal/modkit/repokit"
	"vidtally/internal/services/ingest/domain"
	"vidtally/internal/services/ingest/repo"
	"vidtally/internal/services/ingest/service"
)

// Ports exposed by the ingest module
type Ports struct {
	Importer domain.ImporterPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new ingest module
func New(deps modkit.Deps, overrides Options) *Module {
	// Merge config + overrides
	cfg := FromConfig(deps.Cfg)
	if overrides.Path != "" {
		cfg.Path = overrides.Path
	}
	if overrides.BatchSize != 0 {
		cfg.BatchSize = overrides.BatchSize
	}

	if cfg.Path == "" {
		panic("ingest module: IMPORT_PATH is not set")
	}

	svc := service.New(
		repokit.TxRunner(deps.PG),
		repo.NewHybrid(deps.CH),
		dataset.NewLoader(cfg.Path),
		service.Config{BatchSize: cfg.BatchSize},
	)

	m := &Module{deps: deps}
	m.ports = Ports{Importer: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "ingest" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
