package models

// NFTAttribute is one trait of an NFT metadata document.
type NFTAttribute struct {
	TraitType   string `json:"trait_type"`
	Value       string `json:"value"`
	DisplayType string `json:"display_type,omitempty"`
}

// NFTMetadata is the metadata document pinned to the blob store for an event
// NFT. Field names follow the common marketplace metadata convention.
type NFTMetadata struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location,omitempty"`
	Category    string         `json:"category,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	ExternalURL string         `json:"external_url,omitempty"`
	ImageCID    string         `json:"image_cid,omitempty"`
	Attributes  []NFTAttribute `json:"attributes"`
}

// EventNFT is the gateway's view of a minted event NFT object.
type EventNFT struct {
	ID             string `json:"id"`
	EventID        string `json:"eventId"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ImageURL       string `json:"imageUrl,omitempty"`
	MetadataBlobID string `json:"metadataBlobId,omitempty"`
	Owner          string `json:"owner"`
}
