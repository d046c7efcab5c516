// Package audit streams one record per submitted transaction to Kafka.
package audit

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/pkg/logger"
)

// KafkaProducer is a Kafka-backed implementation of the AuditService.
type KafkaProducer struct {
	writer *kafka.Writer
	log    logger.Logger
}

// NewKafkaProducer creates a producer for the configured audit topic.
func NewKafkaProducer(cfg *config.KafkaConfig, log logger.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.AuditTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: cfg.WriteTimeout,
		BatchTimeout: cfg.BatchTimeout,
	}
	return &KafkaProducer{
		writer: writer,
		log:    log.WithComponent("audit"),
	}
}

// Record sends one audit record, keyed by transaction digest so records for
// the same transaction land in the same partition.
func (p *KafkaProducer) Record(ctx context.Context, event models.TxAuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error(ctx, "failed to marshal audit event", err)
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Digest),
		Value: payload,
	})
	if err != nil {
		p.log.Error(ctx, "failed to write audit event", err, logger.Fields{"digest": event.Digest})
	}
	return err
}

// Close flushes and closes the underlying writer.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

var _ service.AuditService = (*KafkaProducer)(nil)

// ================================================================================
// No-op Audit
// ================================================================================

// NopAuditService discards audit records. Used when Kafka is disabled.
type NopAuditService struct{}

func (NopAuditService) Record(context.Context, models.TxAuditEvent) error { return nil }
func (NopAuditService) Close() error                                      { return nil }

var _ service.AuditService = NopAuditService{}
