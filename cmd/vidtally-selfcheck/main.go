// Command vidtally-selfcheck runs a canned set of questions through the full
// pipeline against the live store and prints what each stage produced.
// Exits non-zero when any evaluation fails
package main

import (
	"context"
	"encoding/json"
	"fmt"

	"vidtally/internal/core/sqlgen"
	"vidtally/internal/modkit"
	"vidtally/internal/modkit/module"
	"vidtally/internal/platform/config"
	"vidtally/internal/platform/logger"
	"vidtally/internal/platform/store"

	answermod "vidtally/internal/services/answer/module"
)

var questions = []string{
	"Сколько всего видео есть в системе?",
	"Сколько видео набрало больше 100 000 просмотров за всё время?",
	"На сколько просмотров в сумме выросли все видео 28 ноября 2025?",
	"Сколько разных видео получали новые просмотры 27 ноября 2025?",
	"Сколько видео у креатора с id aca1061a9d324ecf8c3fa2bb32d7be63 вышло с 1 ноября 2025 по 5 ноября 2025 включительно?",
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	l := logger.Get()

	pgURL := pgCfg.MustString("DBURL")
	chURL := chCfg.MayString("DBURL", "")

	if err := store.Migrate(context.Background(), pgURL); err != nil {
		l.Fatal().Err(err).Msg("migrations failed")
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
			ClientTag:  "selfcheck",
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
	answer := answermod.New(deps, answermod.Options{})
	module.Register(answer.Name(), answer.Ports())
	ports := module.MustPortsOf[answermod.Ports](answer)

	ctx := context.Background()
	failed := 0
	for _, q := range questions {
		res := ports.Ask.Parse(ctx, q)
		fmt.Println(q)
		fmt.Printf("  strategy: %s\n", res.Strategy)

		if raw, err := json.Marshal(res.Query); err == nil {
			fmt.Printf("  dsl:      %s\n", raw)
		}

		plan, err := sqlgen.Compile(res.Query, sqlgen.DialectPostgres)
		if err != nil {
			fmt.Printf("  error:    %v\n", err)
			failed++
			continue
		}
		fmt.Printf("  sql:      %s  args=%v\n", plan.SQL, plan.Args)

		n, err := ports.Scalar.Eval(ctx, res.Query)
		if err != nil {
			fmt.Printf("  error:    %v\n", err)
			failed++
			continue
		}
		fmt.Printf("  answer:   %d\n", n)
	}

	if failed > 0 {
		l.Fatal().Int("failed", failed).Int("total", len(questions)).Msg("selfcheck failed")
	}
	l.Info().Int("total", len(questions)).Msg("selfcheck passed")
}
