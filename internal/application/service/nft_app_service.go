package service

import (
	"context"
	"fmt"

	"github.com/manolaz/mosaic/internal/application/dto"
	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/repository"
	"github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
	"github.com/manolaz/mosaic/pkg/utils"
)

// NFTAppService drives the event NFT flow: pin imagery and metadata to the
// blob store, mint the NFT object, and transfer it to the sender.
type NFTAppService struct {
	chain     service.ChainClient
	signer    service.Signer
	blobs     service.BlobStore
	blobRefs  repository.BlobRefRepository
	audit     service.AuditService
	log       logger.Logger
	packageID string
}

// NewNFTAppService creates the service.
func NewNFTAppService(
	chain service.ChainClient,
	signer service.Signer,
	blobs service.BlobStore,
	blobRefs repository.BlobRefRepository,
	audit service.AuditService,
	log logger.Logger,
	packageID string,
) *NFTAppService {
	return &NFTAppService{
		chain:     chain,
		signer:    signer,
		blobs:     blobs,
		blobRefs:  blobRefs,
		audit:     audit,
		log:       log.WithComponent("nft_service"),
		packageID: packageID,
	}
}

func (s *NFTAppService) target(name string) string {
	return fmt.Sprintf("%s::%s", s.packageID, name)
}

// CreateEventNFT pins the image and metadata documents, then mints the NFT.
// An image upload failure degrades to an NFT without imagery; a metadata pin
// failure aborts, since the metadata blob id travels on chain.
func (s *NFTAppService) CreateEventNFT(ctx context.Context, req *dto.CreateNFTRequest) (*dto.CreateNFTResponse, error) {
	if req.EventID == "" || req.Name == "" {
		return nil, errors.New(constants.ErrCodeInvalidRequest, "event id and name are required")
	}

	var imageBlobID string
	if len(req.Image) > 0 {
		var err error
		imageBlobID, err = s.blobs.WriteBytes(ctx, req.Image, req.ImageContentType)
		if err != nil {
			s.log.Warn(ctx, "nft image upload failed", logger.Fields{
				"event_id": req.EventID, "error": err.Error(),
			})
			imageBlobID = ""
		}
	}

	metadata := models.NFTMetadata{
		Title:       req.Name,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Tags:        req.Tags,
		ExternalURL: req.ExternalURL,
		ImageCID:    imageBlobID,
		Attributes: []models.NFTAttribute{
			{TraitType: "starts_at", Value: utils.ToIsoFromMs(req.StartsAtMs), DisplayType: "date"},
			{TraitType: "ends_at", Value: utils.ToIsoFromMs(req.EndsAtMs), DisplayType: "date"},
		},
	}
	metadataBlobID, err := s.blobs.WriteJSON(ctx, metadata)
	if err != nil {
		return nil, err
	}

	var imageURL string
	if imageBlobID != "" {
		imageURL = s.blobs.GatewayURL(imageBlobID)
	}

	tx := models.NewTransaction(s.signer.Address())
	minted := tx.AddCall(s.target(constants.TargetEventCreateNFT),
		models.ObjectArg(req.EventID),
		models.PureBytes(req.Name),
		models.PureBytes(req.Description),
		models.PureBytes(imageURL),
		models.PureBytes(metadataBlobID),
	)
	tx.AddCallWithTypes("0x2::transfer::public_transfer",
		[]string{s.packageID + constants.TypeSuffixNFT},
		models.ResultArg(minted),
		models.Pure(s.signer.Address()),
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
		return nil, errors.Newf(constants.ErrCodeChainRPC, "nft transaction %s failed on chain", digest)
	}
	nftID := effects.FirstCreatedByTypeSuffix(constants.TypeSuffixNFT)

	if imageBlobID != "" {
		s.blobRefs.Save(ctx, constants.BlobKindEvent, req.EventID, imageBlobID)
	}
	recordTxAudit(ctx, s.audit, s.log, s.signer.Address(), s.packageID, "create_nft", digest, nftID)

	s.log.Info(ctx, "event nft created", logger.Fields{
		"digest": digest, "nft_id": nftID, "event_id": req.EventID,
	})
	return &dto.CreateNFTResponse{
		Digest:         digest,
		NFTID:          nftID,
		ImageBlobID:    imageBlobID,
		MetadataBlobID: metadataBlobID,
	}, nil
}
