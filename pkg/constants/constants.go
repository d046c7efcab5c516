// Package constants defines shared constants for the Mosaic ticketing gateway:
// error codes, blob reference kinds, cache key layout, and service defaults.
package constants

import "time"

// ServiceName identifies this service in logs, traces, and audit records.
const ServiceName = "mosaic-gateway"

// ================================================================================
// Error Codes
// ================================================================================

// ErrorCode is a machine-readable error category carried by pkg/errors.AppError.
type ErrorCode string

const (
	// ErrCodeInternal indicates an unexpected server-side failure.
	ErrCodeInternal ErrorCode = "internal_error"
	// ErrCodeInvalidRequest indicates a malformed or incomplete request.
	ErrCodeInvalidRequest ErrorCode = "invalid_request"
	// ErrCodeNotFound indicates the requested entity does not exist.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeMalformedEncoding indicates a hex string with odd length or
	// non-hex characters, rejected before any cryptographic operation.
	ErrCodeMalformedEncoding ErrorCode = "malformed_encoding"
	// ErrCodeMalformedKey indicates imported key bytes of the wrong length
	// for the cipher.
	ErrCodeMalformedKey ErrorCode = "malformed_key"
	// ErrCodeDecryptionFailed indicates an authentication failure or a
	// decrypted payload that is not valid JSON.
	ErrCodeDecryptionFailed ErrorCode = "decryption_failed"
	// ErrCodeChainRPC indicates a failure talking to the chain fullnode.
	ErrCodeChainRPC ErrorCode = "chain_rpc_error"
	// ErrCodeBlobStore indicates a failure talking to the blob store.
	ErrCodeBlobStore ErrorCode = "blob_store_error"
	// ErrCodeCheckIn indicates an invalid or expired check-in token.
	ErrCodeCheckIn ErrorCode = "check_in_error"
	// ErrCodeWallet indicates a signing or keystore failure.
	ErrCodeWallet ErrorCode = "wallet_error"
)

// ================================================================================
// Blob Reference Cache
// ================================================================================

// BlobKind namespaces cached blob-store identifiers.
type BlobKind string

const (
	// BlobKindProfile keys profile documents and avatars by wallet address.
	BlobKindProfile BlobKind = "profile"
	// BlobKindEvent keys event images by event object id.
	BlobKindEvent BlobKind = "event"
	// BlobKindOrganizer keys organizer images by organizer slug.
	BlobKindOrganizer BlobKind = "organizer"
)

// BlobRefKeyPrefix is the fixed prefix of blob reference cache keys.
// Keys have the form <prefix>:<kind>:<id>.
const BlobRefKeyPrefix = "walrus"

// BlobRefKeyDelimiter joins the prefix, kind, and id segments of a cache key.
const BlobRefKeyDelimiter = ":"

// ================================================================================
// On-Chain Program Targets
// ================================================================================

// Move call targets of the external ticketing program, resolved against the
// configured package id.
const (
	TargetEventCreate    = "event::create"
	TargetEventShare     = "event::share"
	TargetEventCreateNFT = "event::create_event_nft"
	TargetTicketMint     = "ticket::mint"
	TargetTicketTransfer = "ticket::transfer_ticket"
)

// Object type suffixes used to pick created objects out of transaction effects.
const (
	TypeSuffixEvent  = "::event::Event"
	TypeSuffixTicket = "::ticket::Ticket"
	TypeSuffixNFT    = "::event::EventNFT"
)

// ================================================================================
// Defaults
// ================================================================================

const (
	// DefaultTxPollInterval is the delay between transaction status polls.
	DefaultTxPollInterval = 500 * time.Millisecond
	// DefaultTxWaitTimeout bounds the wait for transaction effects.
	DefaultTxWaitTimeout = 30 * time.Second
	// DefaultBlobEpochs is the storage duration requested on blob writes.
	DefaultBlobEpochs = 3
	// DefaultCheckInTokenTTL bounds the validity of issued check-in tokens.
	DefaultCheckInTokenTTL = 15 * time.Minute
	// DefaultListingCacheTTL bounds staleness of marketplace listings.
	DefaultListingCacheTTL = 30 * time.Second
	// DefaultIndexerPollInterval is the delay between chain event scans.
	DefaultIndexerPollInterval = 10 * time.Second
)

// TicketPayloadVersion tags encrypted ticket payloads for forward compatibility.
const TicketPayloadVersion = "1"

// ================================================================================
// Context Keys
// ================================================================================

// ContextKey is the type used for request-scoped context values.
type ContextKey string

const (
	// ContextKeyRequestID carries the per-request correlation id.
	ContextKeyRequestID ContextKey = "request_id"
	// ContextKeyTraceID carries the distributed trace id when tracing is on.
	ContextKeyTraceID ContextKey = "trace_id"
)
