package main

import (
	"os"
	"time"

	"event-manager/internal/config"
	"event-manager/internal/infrastructure/queue"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Config holds the worker-only settings derived from the app config
type Config struct {
	RedisOpt    asynq.RedisClientOpt
	Concurrency int
	SweepCron   string
	OrphanGrace time.Duration
	HealthAddr  string
}

func loadConfig(app *config.Config) *Config {
	cfg := &Config{
		RedisOpt:    queue.RedisOpt(app.Redis.Host, app.Redis.Password, app.Redis.DB),
		Concurrency: app.Jobs.Concurrency,
		SweepCron:   app.Jobs.ImageSweepCron,
		OrphanGrace: time.Duration(app.Jobs.OrphanGraceHours) * time.Hour,
		HealthAddr:  os.Getenv("WORKER_HEALTH_ADDR"),
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.HealthAddr == "" {
		cfg.HealthAddr = ":9999"
	}

	log.Info().
		Str("redis", cfg.RedisOpt.Addr).
		Int("concurrency", cfg.Concurrency).
		Str("sweep_cron", cfg.SweepCron).
		Dur("orphan_grace", cfg.OrphanGrace).
		Msg("Worker config loaded")

	return cfg
}
