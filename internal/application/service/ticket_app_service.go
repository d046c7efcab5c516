package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/manolaz/mosaic/internal/application/dto"
	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
)

// TicketAppService drives the mint and open-ticket flows.
type TicketAppService struct {
	chain     service.ChainClient
	signer    service.Signer
	cipher    service.PayloadCipher
	blobs     service.BlobStore
	custodian service.KeyCustodian // nil when custody is disabled
	audit     service.AuditService
	log       logger.Logger
	packageID string
}

// NewTicketAppService creates the service. custodian may be nil.
func NewTicketAppService(
	chain service.ChainClient,
	signer service.Signer,
	cipher service.PayloadCipher,
	blobs service.BlobStore,
	custodian service.KeyCustodian,
	audit service.AuditService,
	log logger.Logger,
	packageID string,
) *TicketAppService {
	return &TicketAppService{
		chain:     chain,
		signer:    signer,
		cipher:    cipher,
		blobs:     blobs,
		custodian: custodian,
		audit:     audit,
		log:       log.WithComponent("ticket_service"),
		packageID: packageID,
	}
}

func (s *TicketAppService) target(name string) string {
	return fmt.Sprintf("%s::%s", s.packageID, name)
}

// MintTicket mints a ticket for the event, transfers it to the recipient, and
// produces the encrypted share under a fresh per-mint key. When metadata is
// supplied it is pinned to the blob store first and its blob id travels in the
// mint call.
func (s *TicketAppService) MintTicket(ctx context.Context, req *dto.MintTicketRequest) (*dto.MintTicketResponse, error) {
	if req.EventID == "" || req.Recipient == "" {
		return nil, errors.New(constants.ErrCodeInvalidRequest, "event id and recipient are required")
	}

	var blobID string
	if req.Meta != nil {
		var err error
		blobID, err = s.blobs.WriteJSON(ctx, req.Meta)
		if err != nil {
			return nil, err
		}
	}

	authenticity := req.Authenticity
	if authenticity == "" {
		authenticity = uuid.NewString()
	}

	tx := models.NewTransaction(s.signer.Address())
	minted := tx.AddCall(s.target(constants.TargetTicketMint),
		models.ObjectArg(req.EventID),
		models.PureBytes(blobID),
		models.Pure(authenticity),
		models.Pure(req.Recipient),
	)
	tx.AddCall(s.target(constants.TargetTicketTransfer),
		models.ResultArg(minted),
		models.Pure(req.Recipient),
	)

	digest, err := s.chain.ExecuteTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	effects, err := s.chain.WaitForTransaction(ctx, digest)
	if err != nil {
		return nil, err
	}
	if !effects.Succeeded() {
		return nil, errors.Newf(constants.ErrCodeChainRPC, "mint transaction %s failed on chain", digest)
	}
	ticketID := effects.FirstCreatedByTypeSuffix(constants.TypeSuffixTicket)

	share, err := s.buildShare(req, ticketID)
	if err != nil {
		return nil, err
	}
	s.escrowKey(ctx, ticketID, share.KeyHex, req.EscrowKey)
	recordTxAudit(ctx, s.audit, s.log, s.signer.Address(), s.packageID, "mint_ticket", digest, ticketID)

	s.log.Info(ctx, "ticket minted", logger.Fields{
		"digest": digest, "ticket_id": ticketID, "event_id": req.EventID,
	})
	return &dto.MintTicketResponse{
		Digest:   digest,
		TicketID: ticketID,
		Share:    share.String(),
		BlobID:   blobID,
	}, nil
}

func (s *TicketAppService) buildShare(req *dto.MintTicketRequest, ticketID string) (models.TicketShare, error) {
	key, err := s.cipher.GenerateKey()
	if err != nil {
		return models.TicketShare{}, err
	}
	payload := models.TicketPayload{
		Version:      constants.TicketPayloadVersion,
		EventID:      req.EventID,
		TicketID:     ticketID,
		Holder:       req.Recipient,
		Tier:         req.Tier,
		Track:        req.Track,
		AttendeeType: req.AttendeeType,
	}
	enc, err := s.cipher.EncryptJSON(key, payload)
	if err != nil {
		return models.TicketShare{}, err
	}
	return models.TicketShare{
		CiphertextHex: enc.CiphertextHex,
		IVHex:         enc.IVHex,
		KeyHex:        s.cipher.ExportKeyHex(key),
	}, nil
}

// escrowKey stores the exported key when custody is configured and requested.
// Custody is best-effort; the holder still receives the share either way.
func (s *TicketAppService) escrowKey(ctx context.Context, ticketID, keyHex string, requested bool) {
	if !requested || s.custodian == nil || ticketID == "" {
		return
	}
	if err := s.custodian.StoreTicketKey(ctx, ticketID, keyHex); err != nil {
		s.log.Warn(ctx, "ticket key escrow failed", logger.Fields{
			"ticket_id": ticketID, "error": err.Error(),
		})
	}
}

// OpenEncryptedTicket decrypts a share back into its payload. Accepts either
// the combined share string or the explicit triple.
func (s *TicketAppService) OpenEncryptedTicket(ctx context.Context, req *dto.OpenTicketRequest) (*models.TicketPayload, error) {
	share := models.TicketShare{
		CiphertextHex: req.Ciphertext,
		IVHex:         req.IV,
		KeyHex:        req.Key,
	}
	if req.Share != "" {
		var err error
		share, err = models.ParseTicketShare(req.Share)
		if err != nil {
			return nil, err
		}
	}
	if share.CiphertextHex == "" || share.IVHex == "" || share.KeyHex == "" {
		return nil, errors.New(constants.ErrCodeInvalidRequest, "share or ciphertext/iv/key is required")
	}

	key, err := s.cipher.ImportKeyHex(share.KeyHex)
	if err != nil {
		return nil, err
	}
	var payload models.TicketPayload
	if err := s.cipher.DecryptJSON(key, share.CiphertextHex, share.IVHex, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// RecoverShareKey reads an escrowed key back from custody.
func (s *TicketAppService) RecoverShareKey(ctx context.Context, ticketID string) (string, error) {
	if s.custodian == nil {
		return "", errors.New(constants.ErrCodeNotFound, "key custody is not configured")
	}
	return s.custodian.RetrieveTicketKey(ctx, ticketID)
}
