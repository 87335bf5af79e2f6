package main

import (
	"context"
	"flag"

	"vidtally/internal/modkit"
	"vidtally/internal/modkit/module"
	"vidtally/internal/platform/config"
	"vidtally/internal/platform/logger"
	"vidtally/internal/platform/store"

	ingestmod "vidtally/internal/services/ingest/module"
)

func main() {
	var (
		fPath    = flag.String("path", "", "dataset file (overrides IMPORT_PATH)")
		fBatch   = flag.Int("batch", 0, "videos per upsert statement (overrides IMPORT_BATCH_SIZE)")
		fMigrate = flag.Bool("migrate", true, "apply schema migrations before importing")
	)
	flag.Parse()

	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	l := logger.Get()

	pgURL := pgCfg.MustString("DBURL")
	chURL := chCfg.MayString("DBURL", "")

	if *fMigrate {
		if err := store.Migrate(context.Background(), pgURL); err != nil {
			l.Fatal().Err(err).Msg("migrations failed")
		}
	}

	opts := ingestmod.FromConfig(root)
	if *fPath != "" {
		opts.Path = *fPath
	}
	if opts.Path == "" {
		l.Warn().Msg("no dataset path configured, nothing to import")
		return
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
			ClientTag:  "import",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{Cfg: root, Log: *l, PG: st.PG, CH: st.CH}

	ing := ingestmod.New(deps, ingestmod.Options{Path: *fPath, BatchSize: *fBatch})
	module.Register(ing.Name(), ing.Ports())

	importer := module.MustPortsOf[ingestmod.Ports](ing).Importer
	stats, err := importer.Import(context.Background())
	if err != nil {
		l.Fatal().Err(err).Msg("import failed")
	}
	l.Info().
		Int("videos", stats.Videos).
		Int("snapshots", stats.Snapshots).
		Int("skipped", stats.Skipped).
		Bool("mirrored", stats.Mirrored).
		Msg("import complete")
}
