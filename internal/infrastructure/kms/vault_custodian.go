// Package kms implements ticket key custody on HashiCorp Vault.
package kms

import (
	"context"
	"fmt"

	vault "github.com/hashicorp/vault/api"

	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
)

// VaultCustodian escrows exported ticket keys in Vault's KV store so holders
// can recover a share after losing the out-of-band copy. Custody is opt-in;
// the mint flow works without it.
type VaultCustodian struct {
	client    *vault.Client
	mountPath string
	log       logger.Logger
}

// NewVaultCustodian creates a custodian from configuration.
func NewVaultCustodian(cfg *config.VaultConfig, log logger.Logger) (*VaultCustodian, error) {
	vaultCfg := vault.DefaultConfig()
	vaultCfg.Address = cfg.Address

	client, err := vault.NewClient(vaultCfg)
	if err != nil {
		return nil, errors.Wrap(err, constants.ErrCodeInternal, "failed to create vault client")
	}
	client.SetToken(cfg.Token)

	mountPath := cfg.MountPath
	if mountPath == "" {
		mountPath = "secret/data/mosaic"
	}
	return &VaultCustodian{
		client:    client,
		mountPath: mountPath,
		log:       log.WithComponent("kms"),
	}, nil
}

func (c *VaultCustodian) keyPath(ticketID string) string {
	return fmt.Sprintf("%s/ticket-keys/%s", c.mountPath, ticketID)
}

// StoreTicketKey escrows the exported key hex under the ticket id.
func (c *VaultCustodian) StoreTicketKey(ctx context.Context, ticketID, keyHex string) error {
	data := map[string]interface{}{
		"data": map[string]interface{}{
			"key": keyHex,
		},
	}
	if _, err := c.client.Logical().WriteWithContext(ctx, c.keyPath(ticketID), data); err != nil {
		return errors.Wrap(err, constants.ErrCodeInternal, "failed to escrow ticket key")
	}
	c.log.Debug(ctx, "ticket key escrowed", logger.Fields{"ticket_id": ticketID})
	return nil
}

// RetrieveTicketKey reads an escrowed key back, or returns a not-found error.
func (c *VaultCustodian) RetrieveTicketKey(ctx context.Context, ticketID string) (string, error) {
	secret, err := c.client.Logical().ReadWithContext(ctx, c.keyPath(ticketID))
	if err != nil {
		return "", errors.Wrap(err, constants.ErrCodeInternal, "failed to read ticket key")
	}
	if secret == nil || secret.Data == nil {
		return "", errors.ErrNotFound.WithError(fmt.Errorf("ticket key %s", ticketID))
	}

	// KV v2 nests the payload under "data".
	payload, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		payload = secret.Data
	}
	keyHex, ok := payload["key"].(string)
	if !ok || keyHex == "" {
		return "", errors.ErrNotFound.WithError(fmt.Errorf("ticket key %s", ticketID))
	}
	return keyHex, nil
}

var _ service.KeyCustodian = (*VaultCustodian)(nil)
