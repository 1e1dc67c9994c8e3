package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/akashduggal/passr-backend/internal/config"
	"github.com/akashduggal/passr-backend/internal/repository"
	"github.com/akashduggal/passr-backend/internal/server"
	"github.com/akashduggal/passr-backend/internal/timeutil"
)

// set via -ldflags at build time
var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	sessions := repository.NewSessionRepository()
	srv := server.New(sessions, cfg, timeutil.System(), log, gitSHA, buildTime)

	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-cfg.SessionTTL)
			if n := sessions.DeleteIdleBefore(context.Background(), cutoff); n > 0 {
				log.Info().Int("sessions", n).Msg("swept idle sessions")
			}
		}
	}()

	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
