package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"guidemarket/internal/app"
	"guidemarket/internal/config"
	"guidemarket/internal/events"
	"guidemarket/internal/pkg/logger"
	"guidemarket/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	lg := logger.Init("guidemarket-api", cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := events.NewNotifier(lg)
	store, err := app.OpenStore(ctx, cfg, notifier, lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("store")
	}
	if err := store.Ping(ctx); err != nil {
		lg.Warn().Err(err).Str("source", store.Source()).Msg("store not reachable, reads will degrade")
	}

	if cfg.SeedOnStart {
		if rep, err := seed.Run(ctx, store, lg); err != nil {
			lg.Error().Err(err).Msg("seed on start failed")
		} else {
			lg.Info().Int("added", rep.GuidesAdded).Msg(rep.Message)
		}
	}

	srv := app.NewServer(cfg, store, lg)
	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Router,
	}

	go func() {
		lg.Info().Str("addr", cfg.HTTPAddr).Str("source", store.Source()).Msg("http server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	lg.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("http shutdown")
	}
	if err := srv.Close(); err != nil {
		lg.Error().Err(err).Msg("store close")
	}
}
