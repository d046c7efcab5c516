// Package crypto implements the symmetric payload cipher and the check-in
// token manager.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"io"

	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/utils"
)

const (
	keyBytes = 32
	ivBytes  = 12
)

// TicketCipher encrypts and decrypts small JSON payloads with AES-256-GCM.
// Keys are caller-held; this type never persists them.
type TicketCipher struct{}

// NewTicketCipher creates a TicketCipher.
func NewTicketCipher() *TicketCipher {
	return &TicketCipher{}
}

// GenerateKey produces a new random 256-bit key.
func (c *TicketCipher) GenerateKey() ([]byte, error) {
	key := make([]byte, keyBytes)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, errors.Wrap(err, constants.ErrCodeInternal, "failed to read platform entropy")
	}
	return key, nil
}

// ExportKeyHex serializes a key to lowercase hex.
func (c *TicketCipher) ExportKeyHex(key []byte) string {
	return utils.EncodeHex(key)
}

// ImportKeyHex reconstructs a key from its hex export.
func (c *TicketCipher) ImportKeyHex(hexKey string) ([]byte, error) {
	key, err := utils.DecodeHex(hexKey)
	if err != nil {
		return nil, err
	}
	if len(key) != keyBytes {
		return nil, errors.MalformedKey(len(key))
	}
	return key, nil
}

// EncryptJSON serializes v to JSON and encrypts it under a fresh random IV.
// The returned ciphertext carries the GCM authentication tag.
func (c *TicketCipher) EncryptJSON(key []byte, v interface{}) (models.EncryptedPayload, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return models.EncryptedPayload{}, errors.Wrap(err, constants.ErrCodeInvalidRequest, "payload is not JSON-serializable")
	}

	aead, err := newAEAD(key)
	if err != nil {
		return models.EncryptedPayload{}, err
	}

	iv := make([]byte, ivBytes)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return models.EncryptedPayload{}, errors.Wrap(err, constants.ErrCodeInternal, "failed to generate iv")
	}

	ciphertext := aead.Seal(nil, iv, plaintext, nil)
	return models.EncryptedPayload{
		CiphertextHex: utils.EncodeHex(ciphertext),
		IVHex:         utils.EncodeHex(iv),
	}, nil
}

// DecryptJSON authenticates and decrypts a payload produced by EncryptJSON.
// Hex decoding failures surface as malformed-encoding errors before any
// cryptographic work; authentication failures and non-JSON plaintext surface
// as decryption errors.
func (c *TicketCipher) DecryptJSON(key []byte, ciphertextHex, ivHex string, out interface{}) error {
	ciphertext, err := utils.DecodeHex(ciphertextHex)
	if err != nil {
		return err
	}
	iv, err := utils.DecodeHex(ivHex)
	if err != nil {
		return err
	}

	aead, err := newAEAD(key)
	if err != nil {
		return err
	}
	if len(iv) != aead.NonceSize() {
		return errors.DecryptionFailed(errors.Newf(constants.ErrCodeDecryptionFailed, "iv must be %d bytes, got %d", aead.NonceSize(), len(iv)))
	}

	plaintext, err := aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return errors.DecryptionFailed(err)
	}
	if err := json.Unmarshal(plaintext, out); err != nil {
		return errors.DecryptionFailed(err)
	}
	return nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != keyBytes {
		return nil, errors.MalformedKey(len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, constants.ErrCodeInternal, "failed to create cipher")
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, constants.ErrCodeInternal, "failed to create gcm")
	}
	return aead, nil
}

// Compile-time interface check.
var _ service.PayloadCipher = (*TicketCipher)(nil)
