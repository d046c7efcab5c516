package service

import (
	"context"

	"github.com/manolaz/mosaic/internal/application/dto"
	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/repository"
	"github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
)

// ProfileAppService stores attendee profiles and organizer imagery in the
// blob store, remembering the last blob id per entity in the reference cache.
type ProfileAppService struct {
	blobs    service.BlobStore
	blobRefs repository.BlobRefRepository
	log      logger.Logger
}

// NewProfileAppService creates the service.
func NewProfileAppService(
	blobs service.BlobStore,
	blobRefs repository.BlobRefRepository,
	log logger.Logger,
) *ProfileAppService {
	return &ProfileAppService{
		blobs:    blobs,
		blobRefs: blobRefs,
		log:      log.WithComponent("profile_service"),
	}
}

// SaveProfile pins the profile document and caches its blob id by address.
func (s *ProfileAppService) SaveProfile(ctx context.Context, address string, profile *models.UserProfile) (*dto.SaveProfileResponse, error) {
	if address == "" {
		return nil, errors.New(constants.ErrCodeInvalidRequest, "wallet address is required")
	}
	blobID, err := s.blobs.WriteJSON(ctx, profile)
	if err != nil {
		return nil, err
	}
	s.blobRefs.Save(ctx, constants.BlobKindProfile, address, blobID)

	s.log.Info(ctx, "profile saved", logger.Fields{"address": address, "blob_id": blobID})
	return &dto.SaveProfileResponse{BlobID: blobID}, nil
}

// LoadProfile resolves the cached blob id for an address and fetches the
// document. A cold cache reads as not-found; the caller may retry with an
// explicit blob id from an on-chain record.
func (s *ProfileAppService) LoadProfile(ctx context.Context, address string) (*models.UserProfile, error) {
	blobID, ok := s.blobRefs.Load(ctx, constants.BlobKindProfile, address)
	if !ok {
		return nil, errors.ErrNotFound
	}
	return s.LoadProfileByBlobID(ctx, blobID)
}

// LoadProfileByBlobID fetches a profile document directly.
func (s *ProfileAppService) LoadProfileByBlobID(ctx context.Context, blobID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.blobs.ReadJSON(ctx, blobID, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveOrganizerImage pins an organizer image and caches its blob id by slug.
func (s *ProfileAppService) SaveOrganizerImage(ctx context.Context, slug string, image []byte, contentType string) (string, error) {
	if slug == "" {
		return "", errors.New(constants.ErrCodeInvalidRequest, "organizer slug is required")
	}
	blobID, err := s.blobs.WriteBytes(ctx, image, contentType)
	if err != nil {
		return "", err
	}
	s.blobRefs.Save(ctx, constants.BlobKindOrganizer, slug, blobID)
	return blobID, nil
}

// CachedBlobID exposes the reference cache for display shortcuts.
func (s *ProfileAppService) CachedBlobID(ctx context.Context, kind constants.BlobKind, id string) (string, bool) {
	return s.blobRefs.Load(ctx, kind, id)
}
