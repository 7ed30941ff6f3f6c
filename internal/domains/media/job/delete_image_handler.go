package job

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"event-manager/internal/domains/media/service"
	"event-manager/internal/shared"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// DeleteImageHandler removes the image of a deleted event from storage
// unless another event still points at it.
type DeleteImageHandler struct {
	images service.ServiceInterface
	refs   ImageReferences
}

func NewDeleteImageHandler(images service.ServiceInterface, refs ImageReferences) *DeleteImageHandler {
	return &DeleteImageHandler{images: images, refs: refs}
}

func (h *DeleteImageHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.DeleteImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeleteImage payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	if payload.ImageURL == "" {
		return nil
	}

	urls, err := h.refs.ListImageURLs(ctx)
	if err != nil {
		return fmt.Errorf("list referenced images: %w", err)
	}
	if slices.Contains(urls, payload.ImageURL) {
		log.Info().Str("image_url", payload.ImageURL).Msg("image still referenced, keeping it")
		return nil
	}

	if err := h.images.DeleteImage(ctx, payload.ImageURL); err != nil {
		if service.IsDisabled(err) {
			log.Warn().Str("image_url", payload.ImageURL).Msg("storage disabled, dropping image delete")
			return nil
		}
		log.Error().Err(err).Str("image_url", payload.ImageURL).Msg("Failed to delete event image")
		return fmt.Errorf("delete image: %w", err)
	}

	return nil
}
