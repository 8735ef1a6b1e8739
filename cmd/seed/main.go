package main

import (
	"context"
	"flag"

	"github.com/rs/zerolog/log"

	"guidemarket/internal/app"
	"guidemarket/internal/config"
	"guidemarket/internal/events"
	"guidemarket/internal/pkg/logger"
	"guidemarket/internal/seed"
)

func main() {
	wipe := flag.Bool("clear", false, "remove every guide before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	lg := logger.Init("guidemarket-seed", cfg.AppEnv)
	ctx := context.Background()

	store, err := app.OpenStore(ctx, cfg, events.NewNotifier(lg), lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("store")
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		lg.Fatal().Err(err).Str("source", store.Source()).Msg("store not reachable")
	}

	if *wipe {
		res := store.Clear(ctx)
		if !res.Success {
			lg.Fatal().Err(res.Err).Msg("clear")
		}
		lg.Info().Int("removed", res.Data).Msg("store cleared")
	}

	rep, err := seed.Run(ctx, store, lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("seed")
	}

	st := store.Stats(ctx)
	lg.Info().
		Str("source", store.Source()).
		Int("added", rep.GuidesAdded).
		Int("skipped", rep.GuidesSkipped).
		Int("reviews", rep.ReviewsAdded).
		Int("total_guides", st.Data.TotalGuides).
		Msg(rep.Message)
}
