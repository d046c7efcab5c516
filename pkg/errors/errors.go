// Package errors defines the structured error type used across the Mosaic
// gateway. Every error carries a machine-readable code from pkg/constants and
// an optional cause inspectable with the standard errors package.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/manolaz/mosaic/pkg/constants"
)

// AppError is a code-tagged application error.
type AppError struct {
	Code    constants.ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError returns a copy of the error with the given cause attached.
func (e *AppError) WithError(err error) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, Err: err}
}

// HTTPStatus maps the error code to an HTTP status for the gateway surface.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case constants.ErrCodeInvalidRequest, constants.ErrCodeMalformedEncoding,
		constants.ErrCodeMalformedKey:
		return http.StatusBadRequest
	case constants.ErrCodeDecryptionFailed, constants.ErrCodeCheckIn:
		return http.StatusUnprocessableEntity
	case constants.ErrCodeNotFound:
		return http.StatusNotFound
	case constants.ErrCodeChainRPC, constants.ErrCodeBlobStore:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// New creates an AppError with the given code and message.
func New(code constants.ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf creates an AppError with a formatted message.
func Newf(code constants.ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an existing error.
func Wrap(err error, code constants.ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// ================================================================================
// Predefined Errors
// ================================================================================

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = New(constants.ErrCodeNotFound, "entity not found")
	// ErrInvalidConfig is returned for missing or inconsistent configuration.
	ErrInvalidConfig = New(constants.ErrCodeInvalidRequest, "invalid configuration")
)

// MalformedEncoding reports a hex string that cannot be decoded.
func MalformedEncoding(detail string) *AppError {
	return Newf(constants.ErrCodeMalformedEncoding, "malformed hex encoding: %s", detail)
}

// MalformedKey reports imported key material of an invalid length.
func MalformedKey(gotBytes int) *AppError {
	return Newf(constants.ErrCodeMalformedKey, "key must be 32 bytes, got %d", gotBytes)
}

// DecryptionFailed reports an authentication failure or invalid plaintext.
func DecryptionFailed(cause error) *AppError {
	return Wrap(cause, constants.ErrCodeDecryptionFailed, "decryption failed")
}

// ChainRPC reports a fullnode RPC failure.
func ChainRPC(cause error, method string) *AppError {
	return Wrap(cause, constants.ErrCodeChainRPC, fmt.Sprintf("chain rpc %s failed", method))
}

// BlobStore reports a blob store read or write failure.
func BlobStore(cause error, op string) *AppError {
	return Wrap(cause, constants.ErrCodeBlobStore, fmt.Sprintf("blob store %s failed", op))
}

// ================================================================================
// Inspection Helpers
// ================================================================================

// CodeOf extracts the error code, or ErrCodeInternal for foreign errors.
func CodeOf(err error) constants.ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return constants.ErrCodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code constants.ErrorCode) bool {
	return CodeOf(err) == code
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return IsCode(err, constants.ErrCodeNotFound)
}
