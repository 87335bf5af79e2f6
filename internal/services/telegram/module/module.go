// Package module implements the telegram module
package module

import (
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vidtally/internal/modkit"
	"vidtally/internal/modkit/httpkit"
	"vidtally/internal/services/telegram/domain"
	"vidtally/internal/services/telegram/service"
)

// Ports exposed by the telegram module
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new telegram module
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("telegram"),
	}, opts...)...)

	// Basic guardrails against incorrect wiring
	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("telegram module: expected WithPorts(telegram/domain.Ports)")
	}
	if ports.Ask == nil {
		panic("telegram module: Ports missing Ask")
	}

	// Merge config + overrides
	cfg := FromConfig(deps.Cfg)
	if overrides.Token != "" {
		cfg.Token = overrides.Token
	}
	if overrides.Workers != 0 {
		cfg.Workers = overrides.Workers
	}
	if overrides.PollTimeout != 0 {
		cfg.PollTimeout = overrides.PollTimeout
	}
	// bool override wins (defaults false if caller didn't set)
	cfg.Debug = overrides.Debug

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		panic(err)
	}
	bot.Debug = cfg.Debug

	runner := service.New(bot, ports.Ask, service.Config{
		Workers:     cfg.Workers,
		PollTimeout: cfg.PollTimeout,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Runner: runner}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "telegram" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
