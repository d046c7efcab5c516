package service

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/manolaz/mosaic/internal/application/dto"
	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
)

// ImportAppService replays a seed data file onto the chain, one create-event
// transaction per entry. Used for populating test-net marketplaces.
type ImportAppService struct {
	events *EventAppService
	blobs  service.BlobStore
	log    logger.Logger
}

// NewImportAppService creates the service.
func NewImportAppService(events *EventAppService, blobs service.BlobStore, log logger.Logger) *ImportAppService {
	return &ImportAppService{
		events: events,
		blobs:  blobs,
		log:    log.WithComponent("import_service"),
	}
}

// seedFile is the shape of a seed data document.
type seedFile struct {
	Events     []models.EventSeed `json:"events"`
	Categories []models.Category  `json:"categories,omitempty"`
	Organizers []models.Organizer `json:"organizers,omitempty"`
}

// registryDoc is the import summary pinned to the blob store after a run.
type registryDoc struct {
	EventIDs   []string           `json:"eventIds"`
	Digests    []string           `json:"digests"`
	Categories []models.Category  `json:"categories,omitempty"`
	Organizers []models.Organizer `json:"organizers,omitempty"`
	ImportedAt time.Time          `json:"importedAt"`
}

// ImportSeed runs the import. A failing entry is skipped and counted; the
// registry document at the end is best-effort.
func (s *ImportAppService) ImportSeed(ctx context.Context, path string) (*dto.ImportSeedResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, constants.ErrCodeInvalidRequest, "failed to read seed file")
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, errors.Wrap(err, constants.ErrCodeInvalidRequest, "seed file is not valid JSON")
	}
	if len(seed.Events) == 0 {
		return nil, errors.New(constants.ErrCodeInvalidRequest, "seed file contains no events")
	}

	result := &dto.ImportSeedResult{}
	for _, entry := range seed.Events {
		created, err := s.events.CreateEvent(ctx, &dto.CreateEventRequest{
			Title:         entry.Title,
			Description:   entry.Description,
			StartsAt:      entry.StartsAt,
			EndsAt:        entry.EndsAt,
			CategorySlug:  entry.CategorySlug,
			OrganizerSlug: entry.OrganizerSlug,
		})
		if err != nil {
			result.Failed++
			s.log.Warn(ctx, "seed entry import failed", logger.Fields{
				"title": entry.Title, "error": err.Error(),
			})
			continue
		}
		result.Created = append(result.Created, *created)
	}

	result.RegistryBlobID = s.writeRegistry(ctx, &seed, result)

	s.log.Info(ctx, "seed import finished", logger.Fields{
		"created": len(result.Created), "failed": result.Failed,
	})
	return result, nil
}

func (s *ImportAppService) writeRegistry(ctx context.Context, seed *seedFile, result *dto.ImportSeedResult) string {
	doc := registryDoc{
		Categories: seed.Categories,
		Organizers: seed.Organizers,
		ImportedAt: time.Now().UTC(),
	}
	for _, created := range result.Created {
		doc.EventIDs = append(doc.EventIDs, created.EventID)
		doc.Digests = append(doc.Digests, created.Digest)
	}

	blobID, err := s.blobs.WriteJSON(ctx, doc)
	if err != nil {
		s.log.Warn(ctx, "registry document write failed", logger.Fields{"error": err.Error()})
		return ""
	}
	return blobID
}
