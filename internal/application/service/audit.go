package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/pkg/logger"
)

// recordTxAudit emits one audit record for a settled transaction. Audit is
// best-effort; a failed write is logged and the flow continues.
func recordTxAudit(
	ctx context.Context,
	audit service.AuditService,
	log logger.Logger,
	sender, packageID, kind, digest string,
	created ...string,
) {
	objects := make([]string, 0, len(created))
	for _, id := range created {
		if id != "" {
			objects = append(objects, id)
		}
	}
	err := audit.Record(ctx, models.TxAuditEvent{
		ID:             uuid.NewString(),
		Kind:           kind,
		Digest:         digest,
		Sender:         sender,
		PackageID:      packageID,
		CreatedObjects: objects,
		Timestamp:      time.Now().UTC(),
	})
	if err != nil {
		log.Warn(ctx, "audit record failed", logger.Fields{"digest": digest, "error": err.Error()})
	}
}
