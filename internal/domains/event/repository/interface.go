package repository

import (
	"context"
	"time"

	"event-manager/internal/domains/event/model"
)

// RepositoryInterface defines data access for events.
// Every write is a single statement; there are no cross-row transactions.
type RepositoryInterface interface {
	// Create inserts a fully populated event (id and timestamps set by the caller)
	Create(ctx context.Context, event *model.Event) error

	// List returns all events ordered by (created_at, id)
	List(ctx context.Context) ([]model.Event, error)

	// GetByID returns nil, nil when no row matches
	GetByID(ctx context.Context, id string) (*model.Event, error)

	// Update replaces the editable fields and updated_at.
	// Returns nil, nil when no row matches.
	Update(ctx context.Context, id string, input model.EventInput, updatedAt time.Time) (*model.Event, error)

	// Delete removes the row and returns it; nil, nil when no row matched
	Delete(ctx context.Context, id string) (*model.Event, error)

	// SetMintAddress updates only nft_mint_address and updated_at.
	// Returns nil, nil when no row matches.
	SetMintAddress(ctx context.Context, id, address string, updatedAt time.Time) (*model.Event, error)

	// ListImageURLs returns every non-empty image_url still referenced
	ListImageURLs(ctx context.Context) ([]string, error)
}
