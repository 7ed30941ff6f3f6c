package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"event-manager/internal/domains/media/model"
	"event-manager/internal/infrastructure/storage"
	"event-manager/internal/shared/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type imageService struct {
	store     ImageStore
	processor *storage.ImageProcessor
	newID     func() string
}

// NewImageService returns a service backed by store. A nil store yields a
// service whose uploads fail with ErrUploadsDisabled.
func NewImageService(store ImageStore, processor *storage.ImageProcessor) ServiceInterface {
	if processor == nil {
		processor = storage.NewImageProcessor()
	}
	return &imageService{
		store:     store,
		processor: processor,
		newID:     func() string { return uuid.New().String() },
	}
}

func (s *imageService) Enabled() bool {
	return s.store != nil
}

func (s *imageService) UploadEventImage(ctx context.Context, data []byte) (string, error) {
	if s.store == nil {
		return "", model.ErrUploadsDisabled
	}

	if int64(len(data)) > s.processor.MaxSize {
		metrics.ImageUploadsTotal.WithLabelValues(metrics.UploadRejected).Inc()
		return "", model.NewImageTooLarge(s.processor.MaxSize)
	}
	if err := s.processor.ValidateImage(data); err != nil {
		metrics.ImageUploadsTotal.WithLabelValues(metrics.UploadRejected).Inc()
		return "", model.NewInvalidImage(err)
	}

	processed, err := s.processor.ProcessImage(data)
	if err != nil {
		metrics.ImageUploadsTotal.WithLabelValues(metrics.UploadRejected).Inc()
		return "", model.NewInvalidImage(err)
	}

	key := model.ImageKeyPrefix + s.newID() + ".jpg"
	url, err := s.store.Upload(ctx, key, processed, "image/jpeg")
	if err != nil {
		metrics.ImageUploadsTotal.WithLabelValues(metrics.UploadFailed).Inc()
		log.Error().Err(err).Str("key", key).Msg("image upload failed")
		return "", model.NewStorageError("store image", err)
	}

	metrics.ImageUploadsTotal.WithLabelValues(metrics.UploadSuccess).Inc()
	log.Info().Str("key", key).Int("bytes", len(processed)).Msg("event image uploaded")
	return url, nil
}

func (s *imageService) DeleteImage(ctx context.Context, imageURL string) error {
	if s.store == nil {
		return model.ErrUploadsDisabled
	}

	key, ok := s.store.KeyFromURL(imageURL)
	if !ok || !strings.HasPrefix(key, model.ImageKeyPrefix) {
		log.Debug().Str("image_url", imageURL).Msg("skip delete of unmanaged image")
		return nil
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return model.NewStorageError("delete image", err)
	}
	log.Info().Str("key", key).Msg("event image deleted")
	return nil
}

func (s *imageService) SweepOrphans(ctx context.Context, referenced []string, cutoff time.Time) (model.SweepResult, error) {
	var result model.SweepResult
	if s.store == nil {
		return result, model.ErrUploadsDisabled
	}

	inUse := make(map[string]struct{}, len(referenced))
	for _, url := range referenced {
		if key, ok := s.store.KeyFromURL(url); ok {
			inUse[key] = struct{}{}
		}
	}

	objects, err := s.store.ListObjects(ctx, model.ImageKeyPrefix)
	if err != nil {
		return result, model.NewStorageError("list images", err)
	}
	result.Scanned = len(objects)

	var orphans []string
	for _, obj := range objects {
		if _, ok := inUse[obj.Key]; ok {
			continue
		}
		// fresh uploads may belong to a form that has not been saved yet
		if !obj.LastModified.Before(cutoff) {
			continue
		}
		orphans = append(orphans, obj.Key)
	}

	if err := s.store.RemoveObjects(ctx, orphans); err != nil {
		return result, model.NewStorageError("remove orphaned images", err)
	}
	result.Removed = len(orphans)
	metrics.OrphanImagesRemovedTotal.Add(float64(len(orphans)))
	return result, nil
}

// IsDisabled reports whether err means uploads are switched off
func IsDisabled(err error) bool {
	return errors.Is(err, model.ErrUploadsDisabled)
}
