// Package repository defines the persistence ports of the domain layer.
package repository

import (
	"context"

	"github.com/manolaz/mosaic/pkg/constants"
)

// BlobRefRepository remembers which blob-store identifier was last associated
// with a (kind, id) pair so uploaded assets are not re-uploaded on every
// render.
//
// The contract is deliberately lossy: Save swallows storage failures and Load
// reports absence instead of erroring, because losing this cache only costs a
// re-upload prompt and must never block the primary transaction flow.
type BlobRefRepository interface {
	// Save writes the mapping, overwriting any prior value for the exact
	// (kind, id) pair.
	Save(ctx context.Context, kind constants.BlobKind, id, blobID string)

	// Load returns the previously saved blob id, or ok=false if never saved
	// or the store is unreachable.
	Load(ctx context.Context, kind constants.BlobKind, id string) (blobID string, ok bool)
}
