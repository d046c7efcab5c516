package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
)

// jsonBlobStore stores JSON documents round-trippably, unlike the string
// formatting fake.
type jsonBlobStore struct {
	*fakeBlobStore
}

func (j *jsonBlobStore) WriteJSON(ctx context.Context, v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return j.WriteBytes(ctx, data, "application/json")
}

func (j *jsonBlobStore) ReadJSON(ctx context.Context, blobID string, out interface{}) error {
	data, err := j.ReadBytes(ctx, blobID)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func newProfileService() (*ProfileAppService, *memBlobRefs) {
	refs := newMemBlobRefs()
	blobs := &jsonBlobStore{newFakeBlobStore()}
	return NewProfileAppService(blobs, refs, logger.NewNop()), refs
}

func TestSaveAndLoadProfile(t *testing.T) {
	svc, refs := newProfileService()
	ctx := context.Background()

	saved, err := svc.SaveProfile(ctx, "0xalice", &models.UserProfile{
		DisplayName: "Alice",
		Twitter:     "@alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "blob-1", saved.BlobID)

	// Cached under the profile kind.
	cached, ok := refs.Load(ctx, constants.BlobKindProfile, "0xalice")
	require.True(t, ok)
	assert.Equal(t, "blob-1", cached)

	profile, err := svc.LoadProfile(ctx, "0xalice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.DisplayName)
	assert.Equal(t, "@alice", profile.Twitter)
}

func TestLoadProfileColdCacheIsNotFound(t *testing.T) {
	svc, _ := newProfileService()
	_, err := svc.LoadProfile(context.Background(), "0xnobody")
	assert.True(t, errors.IsNotFound(err))
}

func TestSaveProfileOverwriteUpdatesCache(t *testing.T) {
	svc, refs := newProfileService()
	ctx := context.Background()

	_, err := svc.SaveProfile(ctx, "0xalice", &models.UserProfile{DisplayName: "Alice"})
	require.NoError(t, err)
	_, err = svc.SaveProfile(ctx, "0xalice", &models.UserProfile{DisplayName: "Alice B"})
	require.NoError(t, err)

	cached, ok := refs.Load(ctx, constants.BlobKindProfile, "0xalice")
	require.True(t, ok)
	assert.Equal(t, "blob-2", cached)

	profile, err := svc.LoadProfile(ctx, "0xalice")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", profile.DisplayName)
}

func TestSaveOrganizerImage(t *testing.T) {
	svc, refs := newProfileService()
	ctx := context.Background()

	blobID, err := svc.SaveOrganizerImage(ctx, "acme", []byte{0x89, 0x50}, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "blob-1", blobID)

	cached, ok := refs.Load(ctx, constants.BlobKindOrganizer, "acme")
	require.True(t, ok)
	assert.Equal(t, blobID, cached)

	// Organizer and profile kinds do not collide.
	_, ok = refs.Load(ctx, constants.BlobKindProfile, "acme")
	assert.False(t, ok)
}

func TestSaveProfileRequiresAddress(t *testing.T) {
	svc, _ := newProfileService()
	_, err := svc.SaveProfile(context.Background(), "", &models.UserProfile{})
	assert.True(t, errors.IsCode(err, constants.ErrCodeInvalidRequest))
}
