package job

import (
	"context"
	"fmt"
	"time"

	"event-manager/internal/domains/media/service"
	"event-manager/pkg/clock"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// ImageReferences lists the image URLs events still point at
type ImageReferences interface {
	ListImageURLs(ctx context.Context) ([]string, error)
}

// SweepImagesHandler removes uploaded images that no event references and
// that are older than the grace period (covers replaced images and
// uploads from forms that were never saved).
type SweepImagesHandler struct {
	images service.ServiceInterface
	refs   ImageReferences
	clock  clock.Clock
	grace  time.Duration
}

func NewSweepImagesHandler(images service.ServiceInterface, refs ImageReferences, clk clock.Clock, grace time.Duration) *SweepImagesHandler {
	return &SweepImagesHandler{images: images, refs: refs, clock: clk, grace: grace}
}

func (h *SweepImagesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	if !h.images.Enabled() {
		return nil
	}

	urls, err := h.refs.ListImageURLs(ctx)
	if err != nil {
		return fmt.Errorf("list referenced images: %w", err)
	}

	cutoff := h.clock.Now().Add(-h.grace)
	result, err := h.images.SweepOrphans(ctx, urls, cutoff)
	if err != nil {
		return fmt.Errorf("sweep orphaned images: %w", err)
	}

	log.Info().
		Int("scanned", result.Scanned).
		Int("removed", result.Removed).
		Time("cutoff", cutoff).
		Msg("orphaned image sweep finished")
	return nil
}
