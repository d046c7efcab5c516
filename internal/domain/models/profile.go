package models

// UserProfile is the attendee profile document stored in the blob store when
// the holder opts into networking.
type UserProfile struct {
	DisplayName   string `json:"displayName"`
	Bio           string `json:"bio,omitempty"`
	Email         string `json:"email,omitempty"`
	Twitter       string `json:"twitter,omitempty"`
	Website       string `json:"website,omitempty"`
	ReputationURL string `json:"reputationUrl,omitempty"`
	AvatarBlobID  string `json:"avatarBlobId,omitempty"`
}
