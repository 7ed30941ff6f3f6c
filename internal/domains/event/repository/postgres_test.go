package repository

import (
	"context"
	"testing"
	"time"

	"event-manager/internal/domains/event/model"
	"event-manager/internal/testutil"
	"event-manager/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (RepositoryInterface, context.Context) {
	t.Helper()
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)
	return NewPostgresRepository(pool, cache.NewNoop()), ctx
}

func sampleEvent(id string, createdAt time.Time) *model.Event {
	return &model.Event{
		ID:          id,
		Title:       "Launch Party",
		Description: "Product launch event",
		Location:    "SF",
		StartDate:   time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestPostgresRepository_CreateAndGet(t *testing.T) {
	repo, ctx := newTestRepo(t)
	created := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, sampleEvent("00000000-0000-0000-0000-000000000001", created)))

	got, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Launch Party", got.Title)
	assert.Nil(t, got.NFTMintAddress)
	assert.Nil(t, got.ImageURL)
	assert.True(t, created.Equal(got.CreatedAt))

	missing, err := repo.GetByID(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostgresRepository_ListInsertionOrder(t *testing.T) {
	repo, ctx := newTestRepo(t)
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	ids := []string{"c", "a", "b"}
	for i, id := range ids {
		require.NoError(t, repo.Create(ctx, sampleEvent(id, base.Add(time.Duration(i)*time.Second))))
	}

	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, id := range ids {
		assert.Equal(t, id, events[i].ID)
	}

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, events, again)
}

func TestPostgresRepository_ListEmpty(t *testing.T) {
	repo, ctx := newTestRepo(t)

	events, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestPostgresRepository_UpdateKeepsMintAddress(t *testing.T) {
	repo, ctx := newTestRepo(t)
	created := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, sampleEvent("evt", created)))

	minted, err := repo.SetMintAddress(ctx, "evt", "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", created.Add(time.Minute))
	require.NoError(t, err)
	require.NotNil(t, minted)
	require.NotNil(t, minted.NFTMintAddress)

	img := "https://example.com/a.png"
	updated, err := repo.Update(ctx, "evt", model.EventInput{
		Title:       "Launch Party 2",
		Description: "Product launch event",
		Location:    "NYC",
		StartDate:   time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC),
		ImageURL:    &img,
	}, created.Add(2*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Launch Party 2", updated.Title)
	assert.Equal(t, "NYC", updated.Location)
	require.NotNil(t, updated.ImageURL)
	assert.Equal(t, img, *updated.ImageURL)
	require.NotNil(t, updated.NFTMintAddress)
	assert.Equal(t, "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", *updated.NFTMintAddress)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestPostgresRepository_MissingRows(t *testing.T) {
	repo, ctx := newTestRepo(t)
	now := time.Now().UTC()

	updated, err := repo.Update(ctx, "missing", model.EventInput{Title: "abc"}, now)
	require.NoError(t, err)
	assert.Nil(t, updated)

	minted, err := repo.SetMintAddress(ctx, "missing", "11111111111111111111111111111111", now)
	require.NoError(t, err)
	assert.Nil(t, minted)

	deleted, err := repo.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestPostgresRepository_Delete(t *testing.T) {
	repo, ctx := newTestRepo(t)
	require.NoError(t, repo.Create(ctx, sampleEvent("evt", time.Now().UTC())))

	deleted, err := repo.Delete(ctx, "evt")
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "evt", deleted.ID)

	got, err := repo.GetByID(ctx, "evt")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPostgresRepository_ListImageURLs(t *testing.T) {
	repo, ctx := newTestRepo(t)
	created := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	img := "http://localhost:9000/events/events/a.jpg"
	withImage := sampleEvent("with-image", created)
	withImage.ImageURL = &img
	empty := ""
	blank := sampleEvent("blank-image", created.Add(time.Second))
	blank.ImageURL = &empty

	require.NoError(t, repo.Create(ctx, withImage))
	require.NoError(t, repo.Create(ctx, blank))
	require.NoError(t, repo.Create(ctx, sampleEvent("no-image", created.Add(2*time.Second))))

	urls, err := repo.ListImageURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{img}, urls)
}
