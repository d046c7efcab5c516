// Package ticketshare opens encrypted ticket shares offline. It is intended
// for scanner and wallet applications that receive a ciphertext:iv:key share
// out of band and must not depend on the gateway being reachable.
package ticketshare

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrMalformedShare = errors.New("share must be ciphertext:iv:key")
	ErrMalformedHex   = errors.New("share fields must be hex encoded")
	ErrBadKey         = errors.New("key must be 32 bytes of hex")
	ErrDecryption     = errors.New("share could not be decrypted")
)

// Payload is the decrypted ticket document carried inside a share.
type Payload struct {
	Version      string `json:"version"`
	EventID      string `json:"eventId"`
	TicketID     string `json:"ticketId"`
	Holder       string `json:"holder"`
	Tier         string `json:"tier,omitempty"`
	Track        string `json:"track,omitempty"`
	AttendeeType string `json:"attendeeType,omitempty"`
}

// Open parses and decrypts a ciphertext:iv:key share.
func Open(share string) (*Payload, error) {
	parts := strings.Split(strings.TrimSpace(share), ":")
	if len(parts) != 3 {
		return nil, ErrMalformedShare
	}
	return OpenParts(parts[0], parts[1], parts[2])
}

// OpenParts decrypts an explicit ciphertext, IV, and key triple.
func OpenParts(ciphertextHex, ivHex, keyHex string) (*Payload, error) {
	key, err := hex.DecodeString(strings.ToLower(keyHex))
	if err != nil {
		return nil, ErrMalformedHex
	}
	if len(key) != 32 {
		return nil, ErrBadKey
	}
	ciphertext, err := hex.DecodeString(strings.ToLower(ciphertextHex))
	if err != nil {
		return nil, ErrMalformedHex
	}
	iv, err := hex.DecodeString(strings.ToLower(ivHex))
	if err != nil {
		return nil, ErrMalformedHex
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrBadKey
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrDecryption
	}
	if len(iv) != aead.NonceSize() {
		return nil, ErrDecryption
	}
	plaintext, err := aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryption
	}

	var payload Payload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, ErrDecryption
	}
	return &payload, nil
}
