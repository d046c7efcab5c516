// Package indexer folds emitted chain events into the local marketplace
// index. The index is a projection: losing it costs a rescan, never data.
package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/repository"
	"github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/internal/infrastructure/chain"
	"github.com/manolaz/mosaic/internal/infrastructure/monitoring"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/logger"
)

// Indexer polls the fullnode for new program events and folds them into index
// rows. Cursors are held in memory; a restart rescans from the beginning,
// which is safe because upserts and mint folds are idempotent.
type Indexer struct {
	chain        service.ChainClient
	repo         repository.EventIndexRepository
	metrics      *monitoring.Metrics
	log          logger.Logger
	packageID    string
	pollInterval time.Duration
	pageSize     int
	cursors      map[string]string
}

// New creates an indexer.
func New(
	chainClient service.ChainClient,
	repo repository.EventIndexRepository,
	metrics *monitoring.Metrics,
	cfg *config.IndexerConfig,
	log logger.Logger,
	packageID string,
) *Indexer {
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = constants.DefaultIndexerPollInterval
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Indexer{
		chain:        chainClient,
		repo:         repo,
		metrics:      metrics,
		log:          log.WithComponent("indexer"),
		packageID:    packageID,
		pollInterval: pollInterval,
		pageSize:     pageSize,
		cursors:      make(map[string]string),
	}
}

// Run polls until the context is canceled. Intended to run under the server's
// errgroup; returns nil on clean shutdown.
func (i *Indexer) Run(ctx context.Context) error {
	i.log.Info(ctx, "indexer started", logger.Fields{
		"poll_interval": i.pollInterval.String(), "page_size": i.pageSize,
	})

	ticker := time.NewTicker(i.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			i.log.Info(ctx, "indexer stopped")
			return nil
		case <-ticker.C:
			if err := i.scan(ctx); err != nil {
				// The next tick retries from the same cursor.
				i.log.Warn(ctx, "index scan failed", logger.Fields{"error": err.Error()})
			}
		}
	}
}

// eventCreatedPayload mirrors the EventCreated program event. Text fields
// tolerate both the byte-vector and string encodings.
type eventCreatedPayload struct {
	EventID   string          `json:"event_id"`
	Organizer string          `json:"organizer"`
	Title     json.RawMessage `json:"title"`
	StartsAt  json.RawMessage `json:"starts_at"`
	EndsAt    json.RawMessage `json:"ends_at"`
}

// ticketMintedPayload mirrors the TicketMinted program event.
type ticketMintedPayload struct {
	EventID  string `json:"event_id"`
	TicketID string `json:"ticket_id"`
}

func (i *Indexer) scan(ctx context.Context) error {
	if err := i.scanType(ctx, fmt.Sprintf("%s::event::EventCreated", i.packageID), i.foldEventCreated); err != nil {
		return err
	}
	return i.scanType(ctx, fmt.Sprintf("%s::ticket::TicketMinted", i.packageID), i.foldTicketMinted)
}

func (i *Indexer) scanType(ctx context.Context, eventType string, fold func(context.Context, models.ChainEvent) error) error {
	for {
		page, err := i.chain.QueryEvents(ctx, eventType, i.cursors[eventType], i.pageSize)
		if err != nil {
			return err
		}

		for _, ev := range page.Events {
			if err := fold(ctx, ev); err != nil {
				i.log.Warn(ctx, "failed to fold chain event", logger.Fields{
					"event_type": eventType, "tx_digest": ev.TxDigest, "error": err.Error(),
				})
			}
		}

		if page.NextCursor != "" {
			i.cursors[eventType] = page.NextCursor
		}
		if !page.HasNext {
			return nil
		}
	}
}

func (i *Indexer) foldEventCreated(ctx context.Context, ev models.ChainEvent) error {
	var payload eventCreatedPayload
	if err := json.Unmarshal(ev.ParsedJSON, &payload); err != nil {
		return err
	}
	if payload.EventID == "" {
		return nil
	}

	entry := &models.EventIndexEntry{
		ID:         payload.EventID,
		Organizer:  payload.Organizer,
		Title:      chain.DecodeTextField(payload.Title),
		StartsAtMs: parseMs(payload.StartsAt),
		EndsAtMs:   parseMs(payload.EndsAt),
		TxDigest:   ev.TxDigest,
	}
	if err := i.repo.Upsert(ctx, entry); err != nil {
		return err
	}
	if i.metrics != nil {
		i.metrics.RecordIndexed("event")
	}
	return nil
}

func (i *Indexer) foldTicketMinted(ctx context.Context, ev models.ChainEvent) error {
	var payload ticketMintedPayload
	if err := json.Unmarshal(ev.ParsedJSON, &payload); err != nil {
		return err
	}
	if payload.EventID == "" || payload.TicketID == "" {
		return nil
	}
	if err := i.repo.RecordMint(ctx, payload.EventID, payload.TicketID); err != nil {
		return err
	}
	if i.metrics != nil {
		i.metrics.RecordIndexed("ticket")
	}
	return nil
}

// parseMs reads an epoch-milliseconds field emitted either as a JSON number
// or a decimal string.
func parseMs(raw json.RawMessage) int64 {
	var asNumber int64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if ms, err := strconv.ParseInt(asString, 10, 64); err == nil {
			return ms
		}
	}
	return 0
}
