package gormdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/repository"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(&config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file:" + t.Name() + "?cache=shared&_pragma=foreign_keys(1)&mode=memory",
	}, logger.NewNop())
	require.NoError(t, err)
	return db
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"}, logger.NewNop())
	assert.Error(t, err)
}

// ================================================================================
// Blob Reference Cache
// ================================================================================

func TestBlobRefSaveLoadRoundTrip(t *testing.T) {
	repo := NewBlobRefRepository(openTestDB(t), logger.NewNop())
	ctx := context.Background()

	_, ok := repo.Load(ctx, constants.BlobKindEvent, "0xevent1")
	assert.False(t, ok)

	repo.Save(ctx, constants.BlobKindEvent, "0xevent1", "blob-a")
	got, ok := repo.Load(ctx, constants.BlobKindEvent, "0xevent1")
	require.True(t, ok)
	assert.Equal(t, "blob-a", got)
}

func TestBlobRefOverwriteReplacesValue(t *testing.T) {
	repo := NewBlobRefRepository(openTestDB(t), logger.NewNop())
	ctx := context.Background()

	repo.Save(ctx, constants.BlobKindProfile, "0xalice", "blob-old")
	repo.Save(ctx, constants.BlobKindProfile, "0xalice", "blob-new")

	got, ok := repo.Load(ctx, constants.BlobKindProfile, "0xalice")
	require.True(t, ok)
	assert.Equal(t, "blob-new", got)
}

func TestBlobRefKindsAreIsolated(t *testing.T) {
	repo := NewBlobRefRepository(openTestDB(t), logger.NewNop())
	ctx := context.Background()

	repo.Save(ctx, constants.BlobKindEvent, "same-id", "blob-event")
	repo.Save(ctx, constants.BlobKindProfile, "same-id", "blob-profile")

	gotEvent, ok := repo.Load(ctx, constants.BlobKindEvent, "same-id")
	require.True(t, ok)
	gotProfile, ok2 := repo.Load(ctx, constants.BlobKindProfile, "same-id")
	require.True(t, ok2)
	assert.Equal(t, "blob-event", gotEvent)
	assert.Equal(t, "blob-profile", gotProfile)
}

// ================================================================================
// Event Index
// ================================================================================

func seedIndex(t *testing.T, repo *EventIndexRepository) {
	t.Helper()
	ctx := context.Background()
	entries := []models.EventIndexEntry{
		{ID: "0xe1", Organizer: "0xorg1", Title: "GopherCon", CategorySlug: "conference", StartsAtMs: 1000, EndsAtMs: 2000},
		{ID: "0xe2", Organizer: "0xorg1", Title: "Rust Meetup", CategorySlug: "meetup", StartsAtMs: 3000, EndsAtMs: 4000},
		{ID: "0xe3", Organizer: "0xorg2", Title: "Hack Night", CategorySlug: "meetup", StartsAtMs: 5000, EndsAtMs: 6000},
	}
	for i := range entries {
		require.NoError(t, repo.Upsert(ctx, &entries[i]))
	}
}

func TestEventIndexUpsertAndGet(t *testing.T) {
	repo := NewEventIndexRepository(openTestDB(t))
	ctx := context.Background()
	seedIndex(t, repo)

	entry, err := repo.Get(ctx, "0xe1")
	require.NoError(t, err)
	assert.Equal(t, "GopherCon", entry.Title)

	// Upsert with the same id replaces fields.
	require.NoError(t, repo.Upsert(ctx, &models.EventIndexEntry{
		ID: "0xe1", Organizer: "0xorg1", Title: "GopherCon EU", StartsAtMs: 1000, EndsAtMs: 2500,
	}))
	entry, err = repo.Get(ctx, "0xe1")
	require.NoError(t, err)
	assert.Equal(t, "GopherCon EU", entry.Title)
	assert.Equal(t, int64(2500), entry.EndsAtMs)

	_, err = repo.Get(ctx, "0xmissing")
	assert.True(t, errors.IsNotFound(err))
}

func TestEventIndexListFilters(t *testing.T) {
	repo := NewEventIndexRepository(openTestDB(t))
	ctx := context.Background()
	seedIndex(t, repo)

	all, err := repo.List(ctx, repository.EventIndexFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Ordered by start time.
	assert.Equal(t, "0xe1", all[0].ID)
	assert.Equal(t, "0xe3", all[2].ID)

	byOrganizer, err := repo.List(ctx, repository.EventIndexFilter{Organizer: "0xorg1"})
	require.NoError(t, err)
	assert.Len(t, byOrganizer, 2)

	byCategory, err := repo.List(ctx, repository.EventIndexFilter{CategorySlug: "meetup"})
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	byWindow, err := repo.List(ctx, repository.EventIndexFilter{FromMs: 2000, ToMs: 5000})
	require.NoError(t, err)
	require.Len(t, byWindow, 1)
	assert.Equal(t, "0xe2", byWindow[0].ID)

	paged, err := repo.List(ctx, repository.EventIndexFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "0xe2", paged[0].ID)
}

func TestEventIndexMintedCountSurvivesUpsert(t *testing.T) {
	repo := NewEventIndexRepository(openTestDB(t))
	ctx := context.Background()
	seedIndex(t, repo)

	require.NoError(t, repo.RecordMint(ctx, "0xe1", "0xt1"))
	require.NoError(t, repo.RecordMint(ctx, "0xe1", "0xt2"))

	entry, err := repo.Get(ctx, "0xe1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), entry.MintedCount)

	// Unknown ids are a no-op.
	require.NoError(t, repo.RecordMint(ctx, "0xmissing", "0xt3"))

	// A rescan of the event row keeps the counter.
	require.NoError(t, repo.Upsert(ctx, &models.EventIndexEntry{
		ID: "0xe1", Organizer: "0xorg1", Title: "GopherCon", StartsAtMs: 1000, EndsAtMs: 2000,
	}))
	entry, err = repo.Get(ctx, "0xe1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), entry.MintedCount)
}

func TestEventIndexMintReplayDoesNotInflateCounter(t *testing.T) {
	repo := NewEventIndexRepository(openTestDB(t))
	ctx := context.Background()
	seedIndex(t, repo)

	// The same mint folded twice, as after a restart that rescans from an
	// old cursor, counts once.
	require.NoError(t, repo.RecordMint(ctx, "0xe1", "0xt1"))
	require.NoError(t, repo.RecordMint(ctx, "0xe1", "0xt1"))

	entry, err := repo.Get(ctx, "0xe1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), entry.MintedCount)
}

func TestEventIndexCount(t *testing.T) {
	repo := NewEventIndexRepository(openTestDB(t))
	ctx := context.Background()
	seedIndex(t, repo)

	count, err := repo.Count(ctx, repository.EventIndexFilter{CategorySlug: "meetup"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
