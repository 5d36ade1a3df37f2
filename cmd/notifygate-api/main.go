// @title         Notifygate API
// @version       0.1.0
// @description   Per-event notification decisions and preference management

package main

import (
	"context"
	"os/signal"
	"syscall"

	"notifygate/internal/modkit/repokit"
	"notifygate/internal/platform/config"
	"notifygate/internal/platform/logger"
	phttp "notifygate/internal/platform/net/http"
	"notifygate/internal/platform/store"

	prefrepo "notifygate/internal/services/api/preferences/repo"

	"notifygate/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (NOTIFY_API_*)
	root := config.New()
	apiCfg := root.Prefix("NOTIFY_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// open the platform store; postgres is a drop-in behind the memory default
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "notifygate-api",
			PG: store.PGConfig{
				Enabled:     pgCfg.MayBool("ENABLED", false),
				URL:         pgCfg.MayString("DBURL", ""),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if st.PG != nil {
		// fail boot loudly if the database never answers
		if p, ok := st.PG.(interface{ Ping(context.Context) error }); ok {
			repokit.MustPing(ctx, "pg", p)
		}
		if err := prefrepo.EnsureSchema(ctx, st.PG); err != nil {
			l.Panic().Err(err).Msg("preferences schema migration failed")
		}
	}

	// http server (reads NOTIFY_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			// the swagger UI needs a generated docs package; opt in once one exists
			EnableSwagger:  apiCfg.MayBool("SWAGGER", false),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
