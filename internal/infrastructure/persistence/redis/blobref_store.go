package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/repository"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/logger"
)

// BlobRefStore is the Redis-backed blob reference cache. Entries never expire;
// a stale blob id only costs a re-upload prompt and the key space is tiny.
type BlobRefStore struct {
	client *redis.Client
	log    logger.Logger
}

// NewBlobRefStore creates the store.
func NewBlobRefStore(client *redis.Client, log logger.Logger) *BlobRefStore {
	return &BlobRefStore{client: client, log: log.WithComponent("blobref_store")}
}

// Save writes the mapping under the namespaced key, swallowing failures.
func (s *BlobRefStore) Save(ctx context.Context, kind constants.BlobKind, id, blobID string) {
	key := models.BlobRefKey(kind, id)
	if err := s.client.Set(ctx, key, blobID, 0).Err(); err != nil {
		s.log.Debug(ctx, "blob ref save failed", logger.Fields{"key": key, "error": err.Error()})
	}
}

// Load returns the saved blob id, or ok=false when absent or unreachable.
func (s *BlobRefStore) Load(ctx context.Context, kind constants.BlobKind, id string) (string, bool) {
	blobID, err := s.client.Get(ctx, models.BlobRefKey(kind, id)).Result()
	if err != nil || blobID == "" {
		return "", false
	}
	return blobID, true
}

var _ repository.BlobRefRepository = (*BlobRefStore)(nil)
