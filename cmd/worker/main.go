package main

import (
	"os"
	"os/signal"
	"syscall"

	"event-manager/pkg/container"
	"event-manager/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	envErr := godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)
	if envErr != nil {
		log.Warn().Msg("No .env file found, using system environment variables")
	}

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize container")
	}
	defer c.Cleanup()

	if !c.Config.Jobs.Enabled {
		log.Warn().Msg("JOBS_ENABLED=false, worker has nothing to do")
		return
	}

	cfg := loadConfig(c.Config)

	if err := checkRedis(cfg); err != nil {
		log.Error().Err(err).Msg("Startup health check failed")
		return
	}

	handlers := initializeHandlers(c, cfg)
	srv := setupAsynqServer(cfg, handlers)
	scheduler, err := setupScheduler(cfg, c.Config.Jobs)
	if err != nil {
		srv.Shutdown()
		log.Error().Err(err).Msg("Failed to set up scheduler")
		return
	}

	health := startHealthCheckServer(cfg.HealthAddr)

	waitForShutdown(srv, scheduler, health)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler, health *healthServer) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Gracefully stopping worker")
	health.Shutdown()
	scheduler.Shutdown()
	srv.Shutdown()
	log.Info().Msg("Worker stopped")
}
