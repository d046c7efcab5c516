package repository

import (
	"context"

	"github.com/manolaz/mosaic/internal/domain/models"
)

// EventIndexFilter narrows marketplace listings.
type EventIndexFilter struct {
	Organizer    string
	CategorySlug string
	FromMs       int64
	ToMs         int64
	Limit        int
	Offset       int
}

// EventIndexRepository stores the marketplace projection of on-chain events.
type EventIndexRepository interface {
	// Upsert inserts the entry or replaces the row with the same object id.
	// The minted counter is preserved across upserts.
	Upsert(ctx context.Context, entry *models.EventIndexEntry) error

	// RecordMint bumps the minted-ticket counter of an event the first time
	// a ticket id is seen; replays of the same ticket are no-ops, so a
	// rescan from an old cursor cannot inflate the counter. Unknown event
	// ids are ignored.
	RecordMint(ctx context.Context, eventID, ticketID string) error

	// Get returns the entry for an event object id, or a not-found error.
	Get(ctx context.Context, id string) (*models.EventIndexEntry, error)

	// List returns entries matching the filter ordered by start time.
	List(ctx context.Context, filter EventIndexFilter) ([]models.EventIndexEntry, error)

	// Count returns the number of entries matching the filter.
	Count(ctx context.Context, filter EventIndexFilter) (int64, error)
}
