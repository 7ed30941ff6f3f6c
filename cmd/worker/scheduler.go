package main

import (
	"fmt"

	"event-manager/internal/config"
	"event-manager/internal/infrastructure/queue"

	"github.com/rs/zerolog/log"
)

// asynqScheduler wraps queue.Scheduler with logging around its lifecycle
type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(cfg *Config, jobConfig config.JobConfig) (*asynqScheduler, error) {
	scheduler := queue.NewScheduler(cfg.RedisOpt, jobConfig)

	if err := scheduler.RegisterMaintenanceJobs(); err != nil {
		return nil, fmt.Errorf("register maintenance jobs: %w", err)
	}

	go func() {
		log.Info().Msg("Scheduler starting")
		if err := scheduler.Start(); err != nil {
			log.Error().Err(err).Msg("Scheduler stopped with error")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}, nil
}

func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("Scheduler shutting down")
	s.Scheduler.Shutdown()
}
