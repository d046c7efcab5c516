package gormdb

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/repository"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/logger"
)

// BlobRefRepository is the relational blob reference cache. Failures are
// logged and swallowed; the cache must never block the primary flow.
type BlobRefRepository struct {
	db  *gorm.DB
	log logger.Logger
}

// NewBlobRefRepository creates the repository.
func NewBlobRefRepository(db *gorm.DB, log logger.Logger) *BlobRefRepository {
	return &BlobRefRepository{db: db, log: log.WithComponent("blobref_repo")}
}

// Save upserts the mapping for the exact (kind, id) pair.
func (r *BlobRefRepository) Save(ctx context.Context, kind constants.BlobKind, id, blobID string) {
	ref := models.BlobRef{Kind: kind, RefID: id, BlobID: blobID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}, {Name: "ref_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"blob_id"}),
		}).
		Create(&ref).Error
	if err != nil {
		r.log.Debug(ctx, "blob ref save failed", logger.Fields{
			"kind": kind, "ref_id": id, "error": err.Error(),
		})
	}
}

// Load returns the saved blob id, or ok=false when absent or unreachable.
func (r *BlobRefRepository) Load(ctx context.Context, kind constants.BlobKind, id string) (string, bool) {
	var ref models.BlobRef
	err := r.db.WithContext(ctx).
		Where("kind = ? AND ref_id = ?", kind, id).
		First(&ref).Error
	if err != nil {
		return "", false
	}
	if ref.BlobID == "" {
		return "", false
	}
	return ref.BlobID, true
}

var _ repository.BlobRefRepository = (*BlobRefRepository)(nil)
