package indexer

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/repository"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
)

type scriptedChain struct {
	mu      sync.Mutex
	pages   map[string][]*models.EventPage
	cursors map[string][]string
	calls   map[string]int
}

func newScriptedChain() *scriptedChain {
	return &scriptedChain{
		pages:   map[string][]*models.EventPage{},
		cursors: map[string][]string{},
		calls:   map[string]int{},
	}
}

func (s *scriptedChain) ExecuteTransaction(context.Context, *models.Transaction) (string, error) {
	return "", errors.ErrNotFound
}

func (s *scriptedChain) WaitForTransaction(context.Context, string) (*models.TxEffects, error) {
	return nil, errors.ErrNotFound
}

func (s *scriptedChain) GetObject(context.Context, string) (*models.ObjectData, error) {
	return nil, errors.ErrNotFound
}

func (s *scriptedChain) QueryEvents(ctx context.Context, eventType, cursor string, limit int) (*models.EventPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursors[eventType] = append(s.cursors[eventType], cursor)
	call := s.calls[eventType]
	pages := s.pages[eventType]
	if call >= len(pages) {
		return &models.EventPage{}, nil
	}
	s.calls[eventType]++
	return pages[call], nil
}

type memIndex struct {
	mu      sync.Mutex
	entries map[string]models.EventIndexEntry
	minted  map[string]int64
	seen    map[string]bool
}

func newMemIndex() *memIndex {
	return &memIndex{
		entries: map[string]models.EventIndexEntry{},
		minted:  map[string]int64{},
		seen:    map[string]bool{},
	}
}

func (m *memIndex) Upsert(ctx context.Context, entry *models.EventIndexEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = *entry
	return nil
}

func (m *memIndex) RecordMint(ctx context.Context, eventID, ticketID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen[ticketID] {
		return nil
	}
	m.seen[ticketID] = true
	m.minted[eventID]++
	return nil
}

func (m *memIndex) Get(ctx context.Context, id string) (*models.EventIndexEntry, error) {
	return nil, errors.ErrNotFound
}

func (m *memIndex) List(context.Context, repository.EventIndexFilter) ([]models.EventIndexEntry, error) {
	return nil, nil
}

func (m *memIndex) Count(context.Context, repository.EventIndexFilter) (int64, error) {
	return 0, nil
}

const (
	createdType = "0xpkg::event::EventCreated"
	mintedType  = "0xpkg::ticket::TicketMinted"
)

func chainEvent(t *testing.T, digest string, payload map[string]interface{}) models.ChainEvent {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return models.ChainEvent{TxDigest: digest, Type: createdType, ParsedJSON: raw}
}

func TestScanFoldsPagesAndAdvancesCursor(t *testing.T) {
	chainFake := newScriptedChain()
	chainFake.pages[createdType] = []*models.EventPage{
		{
			Events: []models.ChainEvent{
				chainEvent(t, "0xd1", map[string]interface{}{
					"event_id": "0xe1", "organizer": "0xorg1",
					"title": []int{72, 105}, "starts_at": "1000", "ends_at": "2000",
				}),
			},
			NextCursor: `{"txDigest":"0xd1"}`,
			HasNext:    true,
		},
		{
			Events: []models.ChainEvent{
				chainEvent(t, "0xd2", map[string]interface{}{
					"event_id": "0xe2", "organizer": "0xorg2",
					"title": "Plain Title", "starts_at": 3000, "ends_at": 4000,
				}),
			},
			NextCursor: `{"txDigest":"0xd2"}`,
			HasNext:    false,
		},
	}
	index := newMemIndex()
	idx := New(chainFake, index, nil, &config.IndexerConfig{}, logger.NewNop(), "0xpkg")

	require.NoError(t, idx.scan(context.Background()))

	require.Len(t, index.entries, 2)
	e1 := index.entries["0xe1"]
	assert.Equal(t, "Hi", e1.Title)
	assert.Equal(t, int64(1000), e1.StartsAtMs)
	assert.Equal(t, "0xd1", e1.TxDigest)

	e2 := index.entries["0xe2"]
	assert.Equal(t, "Plain Title", e2.Title)
	assert.Equal(t, int64(3000), e2.StartsAtMs)

	// Second call carried the first page's cursor.
	created := chainFake.cursors[createdType]
	require.Len(t, created, 2)
	assert.Empty(t, created[0])
	assert.JSONEq(t, `{"txDigest":"0xd1"}`, created[1])

	// A rescan resumes from the last cursor.
	require.NoError(t, idx.scan(context.Background()))
	assert.JSONEq(t, `{"txDigest":"0xd2"}`, chainFake.cursors[createdType][2])
}

func TestScanCountsMintedTickets(t *testing.T) {
	minted := func(digest, eventID string) models.ChainEvent {
		raw, err := json.Marshal(map[string]string{"event_id": eventID, "ticket_id": "0xt-" + digest})
		require.NoError(t, err)
		return models.ChainEvent{TxDigest: digest, Type: mintedType, ParsedJSON: raw}
	}

	chainFake := newScriptedChain()
	chainFake.pages[mintedType] = []*models.EventPage{
		{
			Events: []models.ChainEvent{
				minted("0xm1", "0xe1"),
				minted("0xm2", "0xe1"),
				minted("0xm3", "0xe2"),
			},
			NextCursor: `{"txDigest":"0xm3"}`,
			HasNext:    false,
		},
	}
	index := newMemIndex()
	idx := New(chainFake, index, nil, &config.IndexerConfig{}, logger.NewNop(), "0xpkg")

	require.NoError(t, idx.scan(context.Background()))
	assert.Equal(t, int64(2), index.minted["0xe1"])
	assert.Equal(t, int64(1), index.minted["0xe2"])

	// Mint scans keep their own cursor, separate from EventCreated.
	require.NoError(t, idx.scan(context.Background()))
	assert.JSONEq(t, `{"txDigest":"0xm3"}`, chainFake.cursors[mintedType][1])
	assert.Empty(t, chainFake.cursors[createdType][1])
}

func TestRescanAfterRestartKeepsMintCountStable(t *testing.T) {
	raw, err := json.Marshal(map[string]string{"event_id": "0xe1", "ticket_id": "0xt1"})
	require.NoError(t, err)
	page := &models.EventPage{
		Events: []models.ChainEvent{{TxDigest: "0xm1", Type: mintedType, ParsedJSON: raw}},
	}

	chainFake := newScriptedChain()
	chainFake.pages[mintedType] = []*models.EventPage{page, page}
	index := newMemIndex()

	first := New(chainFake, index, nil, &config.IndexerConfig{}, logger.NewNop(), "0xpkg")
	require.NoError(t, first.scan(context.Background()))

	// A restarted indexer starts from a nil cursor and replays the same
	// event against the same database.
	second := New(chainFake, index, nil, &config.IndexerConfig{}, logger.NewNop(), "0xpkg")
	require.NoError(t, second.scan(context.Background()))

	assert.Equal(t, int64(1), index.minted["0xe1"])
}

func TestScanSkipsMalformedEvents(t *testing.T) {
	chainFake := newScriptedChain()
	chainFake.pages[createdType] = []*models.EventPage{
		{
			Events: []models.ChainEvent{
				{TxDigest: "0xbad", ParsedJSON: json.RawMessage("not json")},
				chainEvent(t, "0xd1", map[string]interface{}{"event_id": "0xe1", "starts_at": "1000"}),
				chainEvent(t, "0xd2", map[string]interface{}{"organizer": "0xorg"}), // no event id
			},
		},
	}
	index := newMemIndex()
	idx := New(chainFake, index, nil, &config.IndexerConfig{}, logger.NewNop(), "0xpkg")

	require.NoError(t, idx.scan(context.Background()))
	assert.Len(t, index.entries, 1)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	chainFake := newScriptedChain()
	idx := New(chainFake, newMemIndex(), nil, &config.IndexerConfig{PollInterval: time.Millisecond}, logger.NewNop(), "0xpkg")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- idx.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("indexer did not stop")
	}
}
