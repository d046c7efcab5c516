package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/pkg/logger"
)

const seedJSON = `{
  "events": [
    {"title": "GopherCon", "startsAt": "2025-06-01T09:00", "endsAt": "2025-06-01T17:00", "categorySlug": "conference"},
    {"title": "Broken Entry", "startsAt": "not a date", "endsAt": "2025-06-02T17:00"},
    {"title": "Hack Night", "startsAt": "2025-06-03T18:00", "endsAt": "2025-06-03T22:00"}
  ],
  "categories": [{"slug": "conference", "name": "Conferences"}]
}`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newImportService(chainFake *fakeChain, blobs *fakeBlobStore) *ImportAppService {
	events := newEventService(chainFake, &fakeAudit{})
	return NewImportAppService(events, blobs, logger.NewNop())
}

func TestImportSeedSkipsBrokenEntries(t *testing.T) {
	chainFake := newFakeChain()
	chainFake.effects = &models.TxEffects{
		Digest: "0xdigest",
		Status: "success",
		Created: []models.OwnedRef{
			{ObjectID: "0xevent", Type: "0xpkg::event::Event", Owner: "0xsender"},
		},
	}
	blobs := newFakeBlobStore()
	svc := newImportService(chainFake, blobs)

	result, err := svc.ImportSeed(context.Background(), writeSeedFile(t, seedJSON))
	require.NoError(t, err)
	assert.Len(t, result.Created, 2)
	assert.Equal(t, 1, result.Failed)
	assert.NotEmpty(t, result.RegistryBlobID)
	assert.Len(t, chainFake.submitted, 2)
}

func TestImportSeedRegistryFailureIsTolerated(t *testing.T) {
	chainFake := newFakeChain()
	blobs := newFakeBlobStore()
	blobs.failNext = 1
	svc := newImportService(chainFake, blobs)

	result, err := svc.ImportSeed(context.Background(), writeSeedFile(t,
		`{"events": [{"title": "X", "startsAt": "2025-06-01T09:00", "endsAt": "2025-06-01T17:00"}]}`))
	require.NoError(t, err)
	assert.Len(t, result.Created, 1)
	assert.Empty(t, result.RegistryBlobID)
}

func TestImportSeedRejectsBadFiles(t *testing.T) {
	svc := newImportService(newFakeChain(), newFakeBlobStore())
	ctx := context.Background()

	_, err := svc.ImportSeed(ctx, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = svc.ImportSeed(ctx, writeSeedFile(t, "not json"))
	assert.Error(t, err)

	_, err = svc.ImportSeed(ctx, writeSeedFile(t, `{"events": []}`))
	assert.Error(t, err)
}
