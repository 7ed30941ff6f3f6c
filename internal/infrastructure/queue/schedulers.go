package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"event-manager/internal/config"
	"event-manager/internal/shared"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterMaintenanceJobs registers every periodic job
func (s *Scheduler) RegisterMaintenanceJobs() error {
	return s.registerSweepOrphanImagesJob()
}

// Sweep orphaned event images (daily at 3 AM by default)
func (s *Scheduler) registerSweepOrphanImagesJob() error {
	payload, err := json.Marshal(shared.SweepOrphanImagesPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeSweepOrphanImages, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.ImageSweepCron,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("register %s: %w", shared.TypeSweepOrphanImages, err)
	}

	log.Info().Str("cron", s.jobConfig.ImageSweepCron).Msg("registered orphaned image sweep")
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
