// Package service holds the application services: each public method is one
// user-facing flow composed from the domain ports.
package service

import (
	"context"
	"fmt"

	"github.com/manolaz/mosaic/internal/application/dto"
	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
	"github.com/manolaz/mosaic/pkg/utils"
)

// EventAppService drives the create-event flow: build, sign, submit, wait,
// extract. No step retries; a failure surfaces once to the caller.
type EventAppService struct {
	chain     service.ChainClient
	signer    service.Signer
	audit     service.AuditService
	log       logger.Logger
	packageID string
}

// NewEventAppService creates the service.
func NewEventAppService(
	chain service.ChainClient,
	signer service.Signer,
	audit service.AuditService,
	log logger.Logger,
	packageID string,
) *EventAppService {
	return &EventAppService{
		chain:     chain,
		signer:    signer,
		audit:     audit,
		log:       log.WithComponent("event_service"),
		packageID: packageID,
	}
}

func (s *EventAppService) target(name string) string {
	return fmt.Sprintf("%s::%s", s.packageID, name)
}

// CreateEvent creates and shares an event object on chain. Date inputs are
// local date-time strings; the chain carries epoch milliseconds.
func (s *EventAppService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.CreateEventResponse, error) {
	startsMs, ok := utils.ParseLocalDateTime(req.StartsAt)
	if !ok {
		return nil, errors.Newf(constants.ErrCodeInvalidRequest, "unparseable start time %q", req.StartsAt)
	}
	endsMs, ok := utils.ParseLocalDateTime(req.EndsAt)
	if !ok {
		return nil, errors.Newf(constants.ErrCodeInvalidRequest, "unparseable end time %q", req.EndsAt)
	}
	if !utils.IsValidRangeMs(startsMs, endsMs) {
		return nil, errors.New(constants.ErrCodeInvalidRequest, "event must end after it starts")
	}

	tx := models.NewTransaction(s.signer.Address())
	created := tx.AddCall(s.target(constants.TargetEventCreate),
		models.Pure(s.signer.Address()),
		models.PureBytes(req.Title),
		models.PureBytes(req.Description),
		models.Pure(startsMs),
		models.Pure(endsMs),
	)
	tx.AddCall(s.target(constants.TargetEventShare), models.ResultArg(created))

	digest, err := s.chain.ExecuteTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	effects, err := s.chain.WaitForTransaction(ctx, digest)
	if err != nil {
		return nil, err
	}
	if !effects.Succeeded() {
		return nil, errors.Newf(constants.ErrCodeChainRPC, "create-event transaction %s failed on chain", digest)
	}

	eventID := effects.FirstCreatedByTypeSuffix(constants.TypeSuffixEvent)
	recordTxAudit(ctx, s.audit, s.log, s.signer.Address(), s.packageID, "create_event", digest, eventID)

	s.log.Info(ctx, "event created", logger.Fields{"digest": digest, "event_id": eventID})
	return &dto.CreateEventResponse{Digest: digest, EventID: eventID}, nil
}
