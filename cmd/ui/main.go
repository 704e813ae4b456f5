package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"bookstore/internal/config"
	"bookstore/pkg/logger"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if envErr != nil {
		log.Debug().Msg("no .env file found, using system environment variables")
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve(cfg)
}
