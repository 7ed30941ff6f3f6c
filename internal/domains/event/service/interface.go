package service

import (
	"context"

	"event-manager/internal/domains/event/model"
)

// ServiceInterface defines the event lifecycle operations
type ServiceInterface interface {
	// CreateEvent validates the request and stores a new event, returning its id
	CreateEvent(ctx context.Context, req model.EventRequest) (string, error)

	// ListEvents returns every event in insertion order
	ListEvents(ctx context.Context) ([]model.Event, error)

	// GetEvent returns the event or a not found error
	GetEvent(ctx context.Context, id string) (*model.Event, error)

	// UpdateEvent replaces the editable fields; the mint address is preserved
	UpdateEvent(ctx context.Context, id string, req model.EventRequest) (*model.Event, error)

	// DeleteEvent hard deletes the event
	DeleteEvent(ctx context.Context, id string) error

	// AttachMintAddress records the address of a token minted by the client
	AttachMintAddress(ctx context.Context, id string, req model.MintAddressRequest) (*model.Event, error)
}

// ImageJobs queues removal of an uploaded image that no event references anymore
type ImageJobs interface {
	EnqueueDeleteImage(ctx context.Context, imageURL string) error
}
