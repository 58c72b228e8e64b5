// Command login performs the one-time interactive Telegram authentication
// and persists the session, so the relay daemon can start unattended.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/voidmesh/tgrelay/internal/conf"
	"github.com/voidmesh/tgrelay/internal/infra/telegram"
	"github.com/voidmesh/tgrelay/internal/session"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	store, err := session.NewStore(cfg.Session.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Session.DBPath).Msg("failed to open session store")
	}
	defer store.Close()

	client := telegram.NewClient(cfg.Telegram.APIID, cfg.Telegram.APIHash, store,
		log.With().Str("component", "telegram").Logger())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := client.Login(ctx, cfg.Telegram.Phone); err != nil {
		log.Fatal().Err(err).Msg("login failed")
	}
}
