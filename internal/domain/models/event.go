// Package models holds the domain entities of the ticketing gateway. The
// authoritative copies of Event, Ticket, and EventNFT live on chain; the
// structs here are read-side views and index rows.
package models

import "time"

// Event is the gateway's view of an on-chain event object.
type Event struct {
	ID              string   `json:"id"`
	Organizer       string   `json:"organizer"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	StartsAtMs      int64    `json:"startsAtMs"`
	EndsAtMs        int64    `json:"endsAtMs"`
	ReputationScore int      `json:"reputationScore"`
	Tracks          []string `json:"tracks,omitempty"`
	Tiers           []string `json:"tiers,omitempty"`
	AttendeeTypes   []string `json:"attendeeTypes,omitempty"`
}

// EventIndexEntry is a marketplace index row derived from chain events. It is
// a convenience projection, never a source of truth; the object id always
// points back at the authoritative record.
type EventIndexEntry struct {
	ID            string    `gorm:"primaryKey;size:128" json:"id"`
	Organizer     string    `gorm:"index;size:128" json:"organizer"`
	Title         string    `gorm:"size:512" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	StartsAtMs    int64     `gorm:"index" json:"startsAtMs"`
	EndsAtMs      int64     `json:"endsAtMs"`
	CategorySlug  string    `gorm:"index;size:128" json:"categorySlug,omitempty"`
	OrganizerSlug string    `gorm:"size:128" json:"organizerSlug,omitempty"`
	BlobID        string    `gorm:"size:256" json:"blobId,omitempty"`
	MintedCount   int64     `json:"mintedCount"`
	TxDigest      string    `gorm:"size:128" json:"txDigest"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName pins the table name independent of gorm pluralization.
func (EventIndexEntry) TableName() string {
	return "event_index"
}

// TicketMintRecord marks a TicketMinted event as already folded into the
// minted counter, keyed by ticket id so rescans from an old cursor cannot
// count the same mint twice.
type TicketMintRecord struct {
	TicketID  string    `gorm:"primaryKey;size:128" json:"ticketId"`
	EventID   string    `gorm:"index;size:128" json:"eventId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName pins the table name independent of gorm pluralization.
func (TicketMintRecord) TableName() string {
	return "ticket_mints"
}

// EventSeed is one entry of a seed data file consumed by the import flow.
type EventSeed struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	CategorySlug  string `json:"categorySlug"`
	OrganizerSlug string `json:"organizerSlug"`
	StartsAt      string `json:"startsAt"`
	EndsAt        string `json:"endsAt"`
}

// Category is a marketplace browsing facet shipped with seed data.
type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Organizer is an event organizer profile shipped with seed data.
type Organizer struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	Twitter string `json:"twitter,omitempty"`
}
