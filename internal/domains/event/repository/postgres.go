package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-manager/internal/domains/event/model"
	"event-manager/pkg/cache"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const (
	eventCacheTTL = time.Minute
	listCacheTTL  = time.Minute
	listCacheKey  = "events:all"
)

const eventColumns = `id, title, description, location, start_date, end_date,
	image_url, nft_mint_address, created_at, updated_at`

// postgresRepository implements RepositoryInterface with pgxpool.
// Reads go through the cache. Writes invalidate it before and after the
// statement; a write whose first invalidation fails is not executed.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates a new event repository instance
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func eventCacheKey(id string) string {
	return "event:" + id
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Location,
		&e.StartDate,
		&e.EndDate,
		&e.ImageURL,
		&e.NFTMintAddress,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.StartDate = e.StartDate.UTC()
	e.EndDate = e.EndDate.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return &e, nil
}

// Create inserts a new event record
func (r *postgresRepository) Create(ctx context.Context, e *model.Event) error {
	if err := r.invalidate(ctx, listCacheKey); err != nil {
		return err
	}

	query := `
		INSERT INTO events (id, title, description, location, start_date, end_date,
			image_url, nft_mint_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.pool.Exec(ctx, query,
		e.ID, e.Title, e.Description, e.Location, e.StartDate, e.EndDate,
		e.ImageURL, e.NFTMintAddress, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	r.invalidateAfterWrite(ctx, listCacheKey)
	return nil
}

// List returns every event in insertion order
func (r *postgresRepository) List(ctx context.Context) ([]model.Event, error) {
	var cached []model.Event
	if found, err := r.cache.Get(ctx, listCacheKey, &cached); err != nil {
		log.Warn().Err(err).Str("key", listCacheKey).Msg("event cache read failed")
	} else if found {
		return cached, nil
	}

	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}

	if err := r.cache.Set(ctx, listCacheKey, events, listCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", listCacheKey).Msg("event cache write failed")
	}
	return events, nil
}

// GetByID retrieves an event by id
func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	key := eventCacheKey(id)

	var cached model.Event
	if found, err := r.cache.Get(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("event cache read failed")
	} else if found {
		return &cached, nil
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}

	if err := r.cache.Set(ctx, key, e, eventCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("event cache write failed")
	}
	return e, nil
}

// Update replaces the editable fields; nft_mint_address is left alone
func (r *postgresRepository) Update(ctx context.Context, id string, in model.EventInput, updatedAt time.Time) (*model.Event, error) {
	if err := r.invalidate(ctx, eventCacheKey(id), listCacheKey); err != nil {
		return nil, err
	}

	query := `
		UPDATE events
		SET title = $2, description = $3, location = $4, start_date = $5,
			end_date = $6, image_url = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + eventColumns

	e, err := scanEvent(r.pool.QueryRow(ctx, query,
		id, in.Title, in.Description, in.Location, in.StartDate, in.EndDate, in.ImageURL, updatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	r.invalidateAfterWrite(ctx, eventCacheKey(id), listCacheKey)
	return e, nil
}

// Delete hard deletes an event and returns the removed row
func (r *postgresRepository) Delete(ctx context.Context, id string) (*model.Event, error) {
	if err := r.invalidate(ctx, eventCacheKey(id), listCacheKey); err != nil {
		return nil, err
	}

	query := `DELETE FROM events WHERE id = $1 RETURNING ` + eventColumns

	e, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}

	r.invalidateAfterWrite(ctx, eventCacheKey(id), listCacheKey)
	return e, nil
}

// SetMintAddress records the address of a minted token
func (r *postgresRepository) SetMintAddress(ctx context.Context, id, address string, updatedAt time.Time) (*model.Event, error) {
	if err := r.invalidate(ctx, eventCacheKey(id), listCacheKey); err != nil {
		return nil, err
	}

	query := `
		UPDATE events
		SET nft_mint_address = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + eventColumns

	e, err := scanEvent(r.pool.QueryRow(ctx, query, id, address, updatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("set mint address: %w", err)
	}

	r.invalidateAfterWrite(ctx, eventCacheKey(id), listCacheKey)
	return e, nil
}

// ListImageURLs bypasses the cache; it feeds the orphaned image sweep
func (r *postgresRepository) ListImageURLs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT image_url FROM events WHERE image_url IS NOT NULL AND image_url <> ''`)
	if err != nil {
		return nil, fmt.Errorf("list image urls: %w", err)
	}
	defer rows.Close()

	urls := make([]string, 0)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan image url: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

func (r *postgresRepository) invalidate(ctx context.Context, keys ...string) error {
	if err := r.cache.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("invalidate event cache: %w", err)
	}
	return nil
}

// invalidateAfterWrite drops entries a concurrent read may have cached
// between the first invalidation and the write. The committed write is not
// reported as failed; entries it misses expire after their ttl.
func (r *postgresRepository) invalidateAfterWrite(ctx context.Context, keys ...string) {
	if err := r.invalidate(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("event cache invalidation after write failed")
	}
}
