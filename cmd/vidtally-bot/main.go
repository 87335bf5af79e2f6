package main

import (
	"context"

	"vidtally/internal/modkit"
	"vidtally/internal/modkit/module"
	"vidtally/internal/modkit/repokit"
	"vidtally/internal/platform/config"
	"vidtally/internal/platform/logger"
	"vidtally/internal/platform/store"

	answermod "vidtally/internal/services/answer/module"
	ingestmod "vidtally/internal/services/ingest/module"
	telegramdom "vidtally/internal/services/telegram/domain"
	telegrammod "vidtally/internal/services/telegram/module"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	l := logger.Get()

	pgURL := pgCfg.MustString("DBURL")
	chURL := chCfg.MayString("DBURL", "")

	if err := store.Migrate(context.Background(), pgURL); err != nil {
		l.Panic().Err(err).Msg("migrations failed")
	}

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgURL,
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled:    chURL != "",
			URL:        chURL,
			ClientName: "vidtally",
			ClientTag:  "bot",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast before the poller comes up
	repokit.MustGuard(context.Background(), st)

	deps := modkit.Deps{
		Cfg: root,
		Log: *l,
		PG:  st.PG,
		CH:  st.CH,
	}

	// seed storage from the dataset file before serving questions
	if iopts := ingestmod.FromConfig(root); iopts.Auto && iopts.Path != "" {
		ing := ingestmod.New(deps, ingestmod.Options{})
		module.Register(ing.Name(), ing.Ports())
		importer := module.MustPortsOf[ingestmod.Ports](ing).Importer
		if _, err := importer.EnsureImported(context.Background()); err != nil {
			l.Fatal().Err(err).Msg("dataset import failed")
		}
	}

	answer := answermod.New(deps, answermod.Options{})
	module.Register(answer.Name(), answer.Ports())
	ask := module.MustPortsOf[answermod.Ports](answer).Ask

	bot := telegrammod.New(deps, telegrammod.Options{},
		modkit.WithPorts(telegramdom.Ports{Ask: ask}),
	)
	module.Register(bot.Name(), bot.Ports())

	ports := module.MustPortsOf[telegrammod.Ports](bot)
	if err := ports.Runner.Run(context.Background()); err != nil {
		l.Fatal().Err(err).Msg("telegram runner failed")
	}
}
