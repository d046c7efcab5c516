// Package wallet loads or generates the gateway's ed25519 signing key and
// derives the sender address from it.
package wallet

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"os"
	"strings"

	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
	"github.com/manolaz/mosaic/pkg/utils"
)

// KeystoreSigner holds the gateway signing key in memory.
type KeystoreSigner struct {
	priv    ed25519.PrivateKey
	address string
}

// NewKeystoreSigner resolves the signing key in order of preference: the
// environment variable named by secret_env, then the keystore file, then a
// fresh ephemeral key when allowed.
func NewKeystoreSigner(cfg *config.WalletConfig, log logger.Logger) (*KeystoreSigner, error) {
	log = log.WithComponent("wallet")

	if cfg.SecretEnv != "" {
		if raw := os.Getenv(cfg.SecretEnv); raw != "" {
			signer, err := signerFromBase64(raw)
			if err != nil {
				return nil, err
			}
			log.Info(context.Background(), "loaded signing key from environment", logger.Fields{"address": signer.address})
			return signer, nil
		}
	}

	if cfg.KeystorePath != "" {
		raw, err := os.ReadFile(cfg.KeystorePath)
		if err == nil {
			signer, err := signerFromBase64(strings.TrimSpace(string(raw)))
			if err != nil {
				return nil, err
			}
			log.Info(context.Background(), "loaded signing key from keystore", logger.Fields{"address": signer.address})
			return signer, nil
		}
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, constants.ErrCodeWallet, "failed to read keystore")
		}
	}

	if !cfg.Ephemeral {
		return nil, errors.New(constants.ErrCodeWallet, "no signing key configured and ephemeral keys are disabled")
	}

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, constants.ErrCodeWallet, "failed to generate signing key")
	}
	signer := newSigner(priv)
	log.Warn(context.Background(), "generated ephemeral signing key", logger.Fields{"address": signer.address})
	return signer, nil
}

func signerFromBase64(raw string) (*KeystoreSigner, error) {
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, errors.Wrap(err, constants.ErrCodeWallet, "signing key is not valid base64")
	}
	switch len(decoded) {
	case ed25519.PrivateKeySize:
		return newSigner(ed25519.PrivateKey(decoded)), nil
	case ed25519.SeedSize:
		return newSigner(ed25519.NewKeyFromSeed(decoded)), nil
	default:
		return nil, errors.Newf(constants.ErrCodeWallet, "signing key must be %d or %d bytes, got %d",
			ed25519.SeedSize, ed25519.PrivateKeySize, len(decoded))
	}
}

func newSigner(priv ed25519.PrivateKey) *KeystoreSigner {
	pub := priv.Public().(ed25519.PublicKey)
	digest := sha256.Sum256(pub)
	return &KeystoreSigner{
		priv:    priv,
		address: "0x" + utils.EncodeHex(digest[:]),
	}
}

// Address returns the sender address derived from the public key.
func (s *KeystoreSigner) Address() string {
	return s.address
}

// Sign signs arbitrary bytes with the gateway key.
func (s *KeystoreSigner) Sign(data []byte) ([]byte, error) {
	return ed25519.Sign(s.priv, data), nil
}

// PublicKey returns the raw public key bytes.
func (s *KeystoreSigner) PublicKey() []byte {
	return []byte(s.priv.Public().(ed25519.PublicKey))
}

// ExportBase64 serializes the private key for persistence.
func (s *KeystoreSigner) ExportBase64() string {
	return base64.StdEncoding.EncodeToString(s.priv)
}

var _ service.Signer = (*KeystoreSigner)(nil)
