package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/josebatista/capicua/bot"
	"github.com/josebatista/capicua/config"
)

func main() {
	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	natsURL := os.Getenv("CAPICUA_NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	b, err := bot.NewBot(&cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("creating bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := b.Main(ctx, natsURL); err != nil && err != context.Canceled {
		log.Fatal().Err(err).Msg("bot exited")
	}
}
