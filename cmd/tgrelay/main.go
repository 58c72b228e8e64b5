package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/voidmesh/tgrelay/internal/biz/domain"
	"github.com/voidmesh/tgrelay/internal/biz/usecase"
	"github.com/voidmesh/tgrelay/internal/conf"
	"github.com/voidmesh/tgrelay/internal/data"
	"github.com/voidmesh/tgrelay/internal/infra/forwarder"
	"github.com/voidmesh/tgrelay/internal/infra/telegram"
	"github.com/voidmesh/tgrelay/internal/session"
)

func main() {
	// Load .env file; fall back to the process environment.
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	fwd, err := forwarder.New(cfg.Forwarder, log.With().Str("component", "forwarder").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create forwarder")
	}
	log.Info().Str("type", fwd.Name()).Msg("forwarder selected")

	store, err := session.NewStore(cfg.Session.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Session.DBPath).Msg("failed to open session store")
	}
	defer store.Close()

	tgClient := telegram.NewClient(cfg.Telegram.APIID, cfg.Telegram.APIHash, store,
		log.With().Str("component", "telegram").Logger())

	repos := data.NewRepositories(tgClient)
	policy := domain.NewFilterPolicy(cfg.Filter.MuteFilter, cfg.Filter.Whitelist, cfg.Filter.Blacklist)
	relay := usecase.NewRelayUsecase(policy, repos.Chat, fwd,
		log.With().Str("component", "relay").Logger())

	tgClient.OnMessage(relay.HandleEvent)

	// Graceful shutdown: canceling the context stops the update loop while
	// in-flight sends complete or time out on their own.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Bool("mute_filter", cfg.Filter.MuteFilter).
		Strs("whitelist", cfg.Filter.Whitelist).
		Strs("blacklist", cfg.Filter.Blacklist).
		Msg("relay starting, waiting for messages")

	if err := tgClient.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("telegram client exited")
	}
	log.Info().Msg("shutting down")
}
