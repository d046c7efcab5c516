// Package dto defines the request and response shapes of the application
// layer, shared by the HTTP handlers and the CLI.
package dto

import "github.com/manolaz/mosaic/internal/domain/models"

// ================================================================================
// Events
// ================================================================================

// CreateEventRequest carries the inputs of a create-event flow. StartsAt and
// EndsAt are local date-time strings as typed by the organizer.
type CreateEventRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	StartsAt      string `json:"startsAt" binding:"required"`
	EndsAt        string `json:"endsAt" binding:"required"`
	CategorySlug  string `json:"categorySlug,omitempty"`
	OrganizerSlug string `json:"organizerSlug,omitempty"`
}

// CreateEventResponse reports the settled create-event transaction.
type CreateEventResponse struct {
	Digest  string `json:"digest"`
	EventID string `json:"eventId"`
}

// EventListRequest narrows marketplace listings.
type EventListRequest struct {
	Organizer    string `form:"organizer"`
	CategorySlug string `form:"category"`
	FromMs       int64  `form:"from"`
	ToMs         int64  `form:"to"`
	Limit        int    `form:"limit"`
	Offset       int    `form:"offset"`
}

// EventListResponse is one page of marketplace listings.
type EventListResponse struct {
	Events []models.EventIndexEntry `json:"events"`
	Total  int64                    `json:"total"`
}

// CalendarDay groups the listings of one day.
type CalendarDay struct {
	Date   string                   `json:"date"` // YYYY-MM-DD
	Events []models.EventIndexEntry `json:"events"`
}

// CalendarResponse is the day-grouped calendar view.
type CalendarResponse struct {
	Days []CalendarDay `json:"days"`
}

// ================================================================================
// Tickets
// ================================================================================

// MintTicketRequest carries the inputs of a mint flow.
type MintTicketRequest struct {
	EventID      string             `json:"eventId" binding:"required"`
	Recipient    string             `json:"recipient" binding:"required"`
	Authenticity string             `json:"authenticity"`
	Tier         string             `json:"tier,omitempty"`
	Track        string             `json:"track,omitempty"`
	AttendeeType string             `json:"attendeeType,omitempty"`
	Meta         *models.TicketMeta `json:"meta,omitempty"`
	EscrowKey    bool               `json:"escrowKey,omitempty"`
}

// MintTicketResponse reports the settled mint and the out-of-band share.
type MintTicketResponse struct {
	Digest   string `json:"digest"`
	TicketID string `json:"ticketId"`
	Share    string `json:"share"` // ciphertext:iv:key
	BlobID   string `json:"blobId,omitempty"`
}

// OpenTicketRequest carries an encrypted share in either form: the combined
// share string, or the explicit triple.
type OpenTicketRequest struct {
	Share      string `json:"share,omitempty"`
	Ciphertext string `json:"ciphertext,omitempty"`
	IV         string `json:"iv,omitempty"`
	Key        string `json:"key,omitempty"`
}

// ================================================================================
// NFTs
// ================================================================================

// CreateNFTRequest carries the inputs of an event NFT flow. Image is optional;
// an upload failure degrades to an NFT without imagery.
type CreateNFTRequest struct {
	EventID          string   `json:"eventId" binding:"required"`
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	Location         string   `json:"location,omitempty"`
	Category         string   `json:"category,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	ExternalURL      string   `json:"externalUrl,omitempty"`
	StartsAtMs       int64    `json:"startsAtMs"`
	EndsAtMs         int64    `json:"endsAtMs"`
	Image            []byte   `json:"image,omitempty"`
	ImageContentType string   `json:"imageContentType,omitempty"`
}

// CreateNFTResponse reports the settled NFT transaction and the pinned blobs.
type CreateNFTResponse struct {
	Digest         string `json:"digest"`
	NFTID          string `json:"nftId"`
	ImageBlobID    string `json:"imageBlobId,omitempty"`
	MetadataBlobID string `json:"metadataBlobId"`
}

// ================================================================================
// Import
// ================================================================================

// ImportSeedResult summarizes a seed import run.
type ImportSeedResult struct {
	Created        []CreateEventResponse `json:"created"`
	Failed         int                   `json:"failed"`
	RegistryBlobID string                `json:"registryBlobId,omitempty"`
}

// ================================================================================
// Profiles
// ================================================================================

// SaveProfileResponse reports where a profile document landed.
type SaveProfileResponse struct {
	BlobID string `json:"blobId"`
}

// ================================================================================
// Check-in
// ================================================================================

// IssueCheckInRequest asks for a check-in token for a held ticket.
type IssueCheckInRequest struct {
	TicketID string `json:"ticketId" binding:"required"`
	EventID  string `json:"eventId" binding:"required"`
	Holder   string `json:"holder" binding:"required"`
}

// IssueCheckInResponse carries the compact token rendered as a QR code.
type IssueCheckInResponse struct {
	Token string `json:"token"`
}

// VerifyCheckInRequest carries a scanned token.
type VerifyCheckInRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyCheckInResponse reports the verified binding.
type VerifyCheckInResponse struct {
	TicketID string `json:"ticketId"`
	EventID  string `json:"eventId"`
	Holder   string `json:"holder"`
}
