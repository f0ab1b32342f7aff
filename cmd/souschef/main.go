package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/hearthware/souschef/souschef/api"
	"github.com/hearthware/souschef/souschef/assistant"
	"github.com/hearthware/souschef/souschef/config"
	"github.com/hearthware/souschef/souschef/db"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("loading config failed")
	}

	conn, err := db.Connect(cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("opening recipe database failed")
	}
	defer conn.Close()

	if err := db.EnsureSchema(context.Background(), conn); err != nil {
		logger.Fatal().Err(err).Msg("preparing recipe schema failed")
	}

	factory := assistant.NewFactory(cfg, conn, logger)
	chat := factory.CreateAssistant()

	config.Watch(logger, func(next *config.Config) {
		// Sampling and window changes take effect on restart; the watch
		// exists so operators see edits acknowledged in the log.
		logger.Info().Msg("config reloaded")
	})

	server := api.NewServer(cfg.Server.Port, chat, logger)
	if err := server.Start(); err != nil {
		logger.Fatal().Err(err).Msg("api server stopped")
	}
}
