package service

import (
	"context"
	"time"

	"event-manager/internal/domains/media/model"
	"event-manager/internal/infrastructure/storage"
)

// ImageStore is the object storage the media service writes to
type ImageStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error)
	RemoveObjects(ctx context.Context, keys []string) error
	KeyFromURL(url string) (string, bool)
}

type ServiceInterface interface {
	// Enabled is false when no object storage is configured
	Enabled() bool

	// UploadEventImage validates, resizes and stores an image, returning its public URL
	UploadEventImage(ctx context.Context, data []byte) (string, error)

	// DeleteImage removes an image by its public URL; foreign URLs are ignored
	DeleteImage(ctx context.Context, imageURL string) error

	// SweepOrphans removes stored images not in referenced and older than cutoff
	SweepOrphans(ctx context.Context, referenced []string, cutoff time.Time) (model.SweepResult, error)
}
