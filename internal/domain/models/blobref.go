package models

import (
	"strings"

	"github.com/manolaz/mosaic/pkg/constants"
)

// BlobRef associates an entity with the blob-store identifier last uploaded
// for it. Purely local-device memory; the authoritative blob id always comes
// from a blob-store write or an on-chain record.
type BlobRef struct {
	Kind   constants.BlobKind `gorm:"primaryKey;size:32" json:"kind"`
	RefID  string             `gorm:"primaryKey;size:256;column:ref_id" json:"refId"`
	BlobID string             `gorm:"size:256" json:"blobId"`
}

// TableName pins the table name independent of gorm pluralization.
func (BlobRef) TableName() string {
	return "blob_refs"
}

// BlobRefKey builds the namespaced cache key <prefix>:<kind>:<id> shared by
// the key-value backed cache implementations.
func BlobRefKey(kind constants.BlobKind, id string) string {
	return strings.Join(
		[]string{constants.BlobRefKeyPrefix, string(kind), id},
		constants.BlobRefKeyDelimiter,
	)
}
