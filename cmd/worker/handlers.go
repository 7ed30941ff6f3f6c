package main

import (
	mediaJob "event-manager/internal/domains/media/job"
	"event-manager/internal/shared"
	"event-manager/pkg/container"

	"github.com/hibiken/asynq"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	deleteImage *mediaJob.DeleteImageHandler
	sweepImages *mediaJob.SweepImagesHandler
}

func initializeHandlers(c *container.Container, cfg *Config) *HandlerRegistry {
	return &HandlerRegistry{
		deleteImage: mediaJob.NewDeleteImageHandler(c.ImageService, c.EventRepo),
		sweepImages: mediaJob.NewSweepImagesHandler(c.ImageService, c.EventRepo, c.Clock, cfg.OrphanGrace),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Media tasks
	mux.HandleFunc(shared.TypeDeleteEventImage, h.deleteImage.ProcessTask)

	// Maintenance tasks
	mux.HandleFunc(shared.TypeSweepOrphanImages, h.sweepImages.ProcessTask)
}
