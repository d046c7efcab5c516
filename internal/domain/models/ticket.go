package models

import (
	"fmt"
	"strings"

	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
)

// Ticket is the gateway's view of an on-chain ticket object.
type Ticket struct {
	ID            string `json:"id"`
	EventID       string `json:"eventId"`
	Organizer     string `json:"organizer"`
	Holder        string `json:"holder"`
	WalrusBlobID  string `json:"walrusBlobId,omitempty"`
	Tier          string `json:"tier,omitempty"`
	Track         string `json:"track,omitempty"`
	AttendeeType  string `json:"attendeeType,omitempty"`
	CheckedIn     bool   `json:"checkedIn,omitempty"`
	ProfileOptIn  bool   `json:"profileOptIn,omitempty"`
	ProfileBlobID string `json:"profileBlobId,omitempty"`
}

// TicketPayload is the plaintext encrypted into a ticket share. The schema is
// owned by this layer, not by the cipher.
type TicketPayload struct {
	Version      string `json:"version"`
	EventID      string `json:"eventId"`
	TicketID     string `json:"ticketId"`
	Holder       string `json:"holder"`
	Tier         string `json:"tier,omitempty"`
	Track        string `json:"track,omitempty"`
	AttendeeType string `json:"attendeeType,omitempty"`
}

// EncryptedPayload is the transport form of an encrypted JSON document.
type EncryptedPayload struct {
	CiphertextHex string `json:"ciphertext"`
	IVHex         string `json:"iv"`
}

// TicketShare bundles an encrypted payload with its exported key for
// out-of-band sharing (links, copy-paste fields).
type TicketShare struct {
	CiphertextHex string `json:"ciphertext"`
	IVHex         string `json:"iv"`
	KeyHex        string `json:"key"`
}

// String renders the share in its ciphertext:iv:key wire form.
func (s TicketShare) String() string {
	return fmt.Sprintf("%s:%s:%s", s.CiphertextHex, s.IVHex, s.KeyHex)
}

// ParseTicketShare parses the ciphertext:iv:key wire form.
func ParseTicketShare(raw string) (TicketShare, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return TicketShare{}, errors.New(constants.ErrCodeInvalidRequest, "ticket share must be ciphertext:iv:key")
	}
	return TicketShare{CiphertextHex: parts[0], IVHex: parts[1], KeyHex: parts[2]}, nil
}

// TicketMeta is the public ticket metadata document pinned to the blob store.
type TicketMeta struct {
	Version       string `json:"version"`
	Type          string `json:"type"`
	Free          bool   `json:"free"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	CategorySlug  string `json:"categorySlug,omitempty"`
	OrganizerSlug string `json:"organizerSlug,omitempty"`
	StartsAt      string `json:"startsAt"`
	EndsAt        string `json:"endsAt"`
	ImageURL      string `json:"imageUrl,omitempty"`
	ImageBlobID   string `json:"imageBlobId,omitempty"`
}
