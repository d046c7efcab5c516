package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/manolaz/mosaic/internal/application/dto"
	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/repository"
	"github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/internal/infrastructure/chain"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
)

// MarketplaceQueryService serves marketplace listings and the calendar view
// from the local index, with event details read live from the chain. Listings
// pass through a short-TTL cache so a busy marketplace page does not hammer
// the database.
type MarketplaceQueryService struct {
	index repository.EventIndexRepository
	chain service.ChainClient
	cache *gocache.Cache
	log   logger.Logger
}

// NewMarketplaceQueryService creates the service.
func NewMarketplaceQueryService(
	index repository.EventIndexRepository,
	chainClient service.ChainClient,
	log logger.Logger,
) *MarketplaceQueryService {
	return &MarketplaceQueryService{
		index: index,
		chain: chainClient,
		cache: gocache.New(constants.DefaultListingCacheTTL, 2*constants.DefaultListingCacheTTL),
		log:   log.WithComponent("marketplace"),
	}
}

func listingCacheKey(filter repository.EventIndexFilter) string {
	return fmt.Sprintf("list:%s:%s:%d:%d:%d:%d",
		filter.Organizer, filter.CategorySlug, filter.FromMs, filter.ToMs, filter.Limit, filter.Offset)
}

// ListEvents returns one page of listings matching the request.
func (s *MarketplaceQueryService) ListEvents(ctx context.Context, req *dto.EventListRequest) (*dto.EventListResponse, error) {
	filter := repository.EventIndexFilter{
		Organizer:    req.Organizer,
		CategorySlug: req.CategorySlug,
		FromMs:       req.FromMs,
		ToMs:         req.ToMs,
		Limit:        req.Limit,
		Offset:       req.Offset,
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}

	key := listingCacheKey(filter)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*dto.EventListResponse), nil
	}

	entries, err := s.index.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.index.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.EventListResponse{Events: entries, Total: total}
	s.cache.SetDefault(key, resp)
	return resp, nil
}

// Calendar groups the listings of a window by day, ordered chronologically.
// Day boundaries follow UTC, matching the ISO timestamps shown next to them.
func (s *MarketplaceQueryService) Calendar(ctx context.Context, fromMs, toMs int64) (*dto.CalendarResponse, error) {
	entries, err := s.index.List(ctx, repository.EventIndexFilter{FromMs: fromMs, ToMs: toMs})
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]models.EventIndexEntry)
	for _, entry := range entries {
		day := time.UnixMilli(entry.StartsAtMs).UTC().Format("2006-01-02")
		byDay[day] = append(byDay[day], entry)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	resp := &dto.CalendarResponse{}
	for _, day := range days {
		resp.Days = append(resp.Days, dto.CalendarDay{Date: day, Events: byDay[day]})
	}
	return resp, nil
}

// EventDetail reads the authoritative event object from the chain. Text
// fields tolerate both the byte-vector and string encodings.
func (s *MarketplaceQueryService) EventDetail(ctx context.Context, id string) (*models.Event, error) {
	if id == "" {
		return nil, errors.New(constants.ErrCodeInvalidRequest, "event id is required")
	}

	obj, err := s.chain.GetObject(ctx, id)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		ID:          obj.ID,
		Organizer:   chain.DecodeTextField(obj.Fields["organizer"]),
		Title:       chain.DecodeTextField(obj.Fields["title"]),
		Description: chain.DecodeTextField(obj.Fields["description"]),
		StartsAtMs:  parseNumericField(obj.Fields["starts_at"]),
		EndsAtMs:    parseNumericField(obj.Fields["ends_at"]),
	}
	event.ReputationScore = int(parseNumericField(obj.Fields["reputation_score"]))
	return event, nil
}

// parseNumericField reads an integer object field that the fullnode renders
// either as a JSON number or a decimal string, depending on its width.
func parseNumericField(raw json.RawMessage) int64 {
	var asNumber int64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if n, err := strconv.ParseInt(asString, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
