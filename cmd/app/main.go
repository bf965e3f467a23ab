package main

import (
	"lankaride/config"
	"lankaride/di"
	"lankaride/helper"
	"lankaride/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLoggerFor(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
