// Command sendtest pushes a sample payload through the configured forwarder.
// Useful for verifying backend settings without a Telegram session.
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/voidmesh/tgrelay/internal/biz/domain"
	"github.com/voidmesh/tgrelay/internal/conf"
	"github.com/voidmesh/tgrelay/internal/infra/forwarder"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := conf.LoadFromEnv()
	fwd, err := forwarder.New(cfg.Forwarder, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create forwarder")
	}

	message := "test message"
	if len(os.Args) > 1 {
		message = strings.Join(os.Args[1:], " ")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	payload := domain.ForwardPayload{
		ChatTitle: "tgrelay",
		Sender:    "sendtest",
		Message:   message,
	}
	if err := fwd.Send(ctx, payload); err != nil {
		log.Fatal().Err(err).Str("type", fwd.Name()).Msg("send failed")
	}
	log.Info().Str("type", fwd.Name()).Msg("send ok")
}
