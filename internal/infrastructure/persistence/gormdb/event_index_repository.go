package gormdb

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/repository"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
)

// EventIndexRepository persists the marketplace projection of on-chain events.
type EventIndexRepository struct {
	db *gorm.DB
}

// NewEventIndexRepository creates the repository.
func NewEventIndexRepository(db *gorm.DB) *EventIndexRepository {
	return &EventIndexRepository{db: db}
}

// Upsert inserts the entry or replaces the row with the same object id.
// minted_count is excluded from the update so a rescan of EventCreated does
// not reset counters fed by TicketMinted.
func (r *EventIndexRepository) Upsert(ctx context.Context, entry *models.EventIndexEntry) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"organizer", "title", "description", "starts_at_ms", "ends_at_ms",
				"category_slug", "organizer_slug", "blob_id", "tx_digest", "updated_at",
			}),
		}).
		Create(entry).Error
	if err != nil {
		return errors.Wrap(err, constants.ErrCodeInternal, "failed to upsert event index entry")
	}
	return nil
}

// RecordMint bumps the minted-ticket counter the first time a ticket id is
// seen. The mint record and the counter update commit together, so a replayed
// TicketMinted event hits the record's primary key and leaves the counter
// alone.
func (r *EventIndexRepository) RecordMint(ctx context.Context, eventID, ticketID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ticket_id"}},
			DoNothing: true,
		}).Create(&models.TicketMintRecord{TicketID: ticketID, EventID: eventID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already folded.
			return nil
		}
		return tx.Model(&models.EventIndexEntry{}).
			Where("id = ?", eventID).
			UpdateColumn("minted_count", gorm.Expr("minted_count + 1")).Error
	})
	if err != nil {
		return errors.Wrap(err, constants.ErrCodeInternal, "failed to record ticket mint")
	}
	return nil
}

// Get returns the entry for an event object id.
func (r *EventIndexRepository) Get(ctx context.Context, id string) (*models.EventIndexEntry, error) {
	var entry models.EventIndexEntry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNotFound.WithError(err)
	}
	if err != nil {
		return nil, errors.Wrap(err, constants.ErrCodeInternal, "failed to read event index entry")
	}
	return &entry, nil
}

// List returns entries matching the filter ordered by start time.
func (r *EventIndexRepository) List(ctx context.Context, filter repository.EventIndexFilter) ([]models.EventIndexEntry, error) {
	var entries []models.EventIndexEntry
	query := r.applyFilter(ctx, filter).Order("starts_at_ms ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, errors.Wrap(err, constants.ErrCodeInternal, "failed to list event index entries")
	}
	return entries, nil
}

// Count returns the number of entries matching the filter.
func (r *EventIndexRepository) Count(ctx context.Context, filter repository.EventIndexFilter) (int64, error) {
	var count int64
	if err := r.applyFilter(ctx, filter).Model(&models.EventIndexEntry{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, constants.ErrCodeInternal, "failed to count event index entries")
	}
	return count, nil
}

func (r *EventIndexRepository) applyFilter(ctx context.Context, filter repository.EventIndexFilter) *gorm.DB {
	query := r.db.WithContext(ctx)
	if filter.Organizer != "" {
		query = query.Where("organizer = ?", filter.Organizer)
	}
	if filter.CategorySlug != "" {
		query = query.Where("category_slug = ?", filter.CategorySlug)
	}
	if filter.FromMs > 0 {
		query = query.Where("starts_at_ms >= ?", filter.FromMs)
	}
	if filter.ToMs > 0 {
		query = query.Where("starts_at_ms < ?", filter.ToMs)
	}
	return query
}

var _ repository.EventIndexRepository = (*EventIndexRepository)(nil)
