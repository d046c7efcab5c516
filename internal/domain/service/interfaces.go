// Package service defines the domain service ports implemented by the
// infrastructure layer, plus the check-in token service.
package service

import (
	"context"

	"github.com/manolaz/mosaic/internal/domain/models"
)

// PayloadCipher provides confidentiality and integrity for small JSON
// payloads with an authenticated symmetric cipher, hex-encoded for embedding
// in transaction arguments and copy-paste fields.
type PayloadCipher interface {
	// GenerateKey produces a new random 256-bit key.
	GenerateKey() ([]byte, error)

	// ExportKeyHex serializes a key to lowercase hex.
	ExportKeyHex(key []byte) string

	// ImportKeyHex reconstructs a key from its hex export. Fails with a
	// malformed-key error when the decoded length does not fit the cipher.
	ImportKeyHex(hexKey string) ([]byte, error)

	// EncryptJSON serializes v to JSON and encrypts it under a fresh random
	// 12-byte IV. Two calls with identical inputs produce different outputs.
	EncryptJSON(key []byte, v interface{}) (models.EncryptedPayload, error)

	// DecryptJSON authenticates and decrypts the payload, then unmarshals
	// the plaintext into out. Any key/ciphertext/iv mismatch fails with a
	// decryption error; nothing is written to out on failure.
	DecryptJSON(key []byte, ciphertextHex, ivHex string, out interface{}) error
}

// BlobStore writes and reads arbitrary content on the external
// content-addressed blob service.
type BlobStore interface {
	// WriteJSON pins a JSON document and returns its blob id.
	WriteJSON(ctx context.Context, v interface{}) (string, error)

	// WriteBytes pins raw content and returns its blob id.
	WriteBytes(ctx context.Context, data []byte, contentType string) (string, error)

	// ReadJSON fetches a blob and unmarshals it into out.
	ReadJSON(ctx context.Context, blobID string, out interface{}) error

	// ReadBytes fetches raw blob content.
	ReadBytes(ctx context.Context, blobID string) ([]byte, error)

	// GatewayURL renders the public display URL for a blob id.
	GatewayURL(blobID string) string
}

// Signer exposes the connected wallet: the sender address and a signing
// capability over transaction bytes.
type Signer interface {
	Address() string
	Sign(data []byte) ([]byte, error)
	PublicKey() []byte
}

// ChainClient is the fullnode RPC boundary. Implementations submit signed
// transaction envelopes and read objects and program events back. No method
// retries; failures surface once to the caller.
type ChainClient interface {
	// ExecuteTransaction signs and submits the envelope, returning the
	// transaction digest.
	ExecuteTransaction(ctx context.Context, tx *models.Transaction) (string, error)

	// WaitForTransaction polls until the transaction settles or the
	// configured deadline passes.
	WaitForTransaction(ctx context.Context, digest string) (*models.TxEffects, error)

	// GetObject reads an object's content.
	GetObject(ctx context.Context, id string) (*models.ObjectData, error)

	// QueryEvents pages through emitted program events of the given type.
	QueryEvents(ctx context.Context, eventType, cursor string, limit int) (*models.EventPage, error)
}

// KeyCustodian optionally escrows exported ticket keys so a holder can
// recover a share after losing the out-of-band copy.
type KeyCustodian interface {
	StoreTicketKey(ctx context.Context, ticketID, keyHex string) error
	RetrieveTicketKey(ctx context.Context, ticketID string) (string, error)
}

// AuditService records one entry per submitted transaction.
type AuditService interface {
	Record(ctx context.Context, event models.TxAuditEvent) error
	Close() error
}

// CheckInService issues and verifies the short-lived tokens rendered as
// check-in QR codes.
type CheckInService interface {
	IssueToken(ticketID, eventID, holder string) (string, error)
	VerifyToken(token string) (*models.CheckInClaims, error)
}
