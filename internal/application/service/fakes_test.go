package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/repository"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
)

// fakeSigner is a deterministic wallet for tests.
type fakeSigner struct{}

func (fakeSigner) Address() string                  { return "0xsender" }
func (fakeSigner) Sign(data []byte) ([]byte, error) { return []byte("sig"), nil }
func (fakeSigner) PublicKey() []byte                { return []byte("pub") }

// fakeChain records submitted envelopes and replays scripted effects.
type fakeChain struct {
	mu         sync.Mutex
	submitted  []*models.Transaction
	digest     string
	effects    *models.TxEffects
	execErr    error
	waitErr    error
	objects    map[string]*models.ObjectData
	eventPages []*models.EventPage
	pageCalls  int
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		digest:  "0xdigest",
		effects: &models.TxEffects{Digest: "0xdigest", Status: "success"},
		objects: map[string]*models.ObjectData{},
	}
}

func (f *fakeChain) ExecuteTransaction(ctx context.Context, tx *models.Transaction) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.execErr != nil {
		return "", f.execErr
	}
	f.submitted = append(f.submitted, tx)
	return f.digest, nil
}

func (f *fakeChain) WaitForTransaction(ctx context.Context, digest string) (*models.TxEffects, error) {
	if f.waitErr != nil {
		return nil, f.waitErr
	}
	return f.effects, nil
}

func (f *fakeChain) GetObject(ctx context.Context, id string) (*models.ObjectData, error) {
	obj, ok := f.objects[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return obj, nil
}

func (f *fakeChain) QueryEvents(ctx context.Context, eventType, cursor string, limit int) (*models.EventPage, error) {
	if f.pageCalls >= len(f.eventPages) {
		return &models.EventPage{}, nil
	}
	page := f.eventPages[f.pageCalls]
	f.pageCalls++
	return page, nil
}

func (f *fakeChain) lastTx() *models.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.submitted) == 0 {
		return nil
	}
	return f.submitted[len(f.submitted)-1]
}

// fakeBlobStore is an in-memory blob store with injectable failures.
type fakeBlobStore struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	seq      int
	writeErr error
	failNext int // fail this many writes, then succeed
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: map[string][]byte{}}
}

func (f *fakeBlobStore) WriteJSON(ctx context.Context, v interface{}) (string, error) {
	return f.WriteBytes(ctx, []byte(fmt.Sprintf("%v", v)), "application/json")
}

func (f *fakeBlobStore) WriteBytes(ctx context.Context, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext > 0 {
		f.failNext--
		return "", errors.BlobStore(fmt.Errorf("injected write failure"), "write")
	}
	if f.writeErr != nil {
		return "", f.writeErr
	}
	f.seq++
	id := fmt.Sprintf("blob-%d", f.seq)
	f.blobs[id] = data
	return id, nil
}

func (f *fakeBlobStore) ReadJSON(ctx context.Context, blobID string, out interface{}) error {
	return errors.ErrNotFound
}

func (f *fakeBlobStore) ReadBytes(ctx context.Context, blobID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.blobs[blobID]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return data, nil
}

func (f *fakeBlobStore) GatewayURL(blobID string) string {
	return "http://gateway/" + blobID
}

// memBlobRefs is the in-memory blob reference cache.
type memBlobRefs struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemBlobRefs() *memBlobRefs {
	return &memBlobRefs{data: map[string]string{}}
}

func (m *memBlobRefs) Save(ctx context.Context, kind constants.BlobKind, id, blobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[models.BlobRefKey(kind, id)] = blobID
}

func (m *memBlobRefs) Load(ctx context.Context, kind constants.BlobKind, id string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blobID, ok := m.data[models.BlobRefKey(kind, id)]
	return blobID, ok && blobID != ""
}

var _ repository.BlobRefRepository = (*memBlobRefs)(nil)

// fakeAudit records everything it is given.
type fakeAudit struct {
	mu     sync.Mutex
	events []models.TxAuditEvent
}

func (f *fakeAudit) Record(ctx context.Context, event models.TxAuditEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAudit) Close() error { return nil }

// fakeCustodian escrows keys in memory.
type fakeCustodian struct {
	mu   sync.Mutex
	keys map[string]string
	err  error
}

func newFakeCustodian() *fakeCustodian {
	return &fakeCustodian{keys: map[string]string{}}
}

func (f *fakeCustodian) StoreTicketKey(ctx context.Context, ticketID, keyHex string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.keys[ticketID] = keyHex
	return nil
}

func (f *fakeCustodian) RetrieveTicketKey(ctx context.Context, ticketID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	keyHex, ok := f.keys[ticketID]
	if !ok {
		return "", errors.ErrNotFound
	}
	return keyHex, nil
}

// memEventIndex is the in-memory marketplace index.
type memEventIndex struct {
	mu      sync.Mutex
	entries map[string]models.EventIndexEntry
	mints   map[string]bool
}

func newMemEventIndex() *memEventIndex {
	return &memEventIndex{entries: map[string]models.EventIndexEntry{}, mints: map[string]bool{}}
}

func (m *memEventIndex) Upsert(ctx context.Context, entry *models.EventIndexEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = *entry
	return nil
}

func (m *memEventIndex) RecordMint(ctx context.Context, eventID, ticketID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mints[ticketID] {
		return nil
	}
	m.mints[ticketID] = true
	if entry, ok := m.entries[eventID]; ok {
		entry.MintedCount++
		m.entries[eventID] = entry
	}
	return nil
}

func (m *memEventIndex) Get(ctx context.Context, id string) (*models.EventIndexEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return &entry, nil
}

func (m *memEventIndex) List(ctx context.Context, filter repository.EventIndexFilter) ([]models.EventIndexEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.EventIndexEntry
	for _, entry := range m.entries {
		if filter.Organizer != "" && entry.Organizer != filter.Organizer {
			continue
		}
		if filter.CategorySlug != "" && entry.CategorySlug != filter.CategorySlug {
			continue
		}
		if filter.FromMs > 0 && entry.StartsAtMs < filter.FromMs {
			continue
		}
		if filter.ToMs > 0 && entry.StartsAtMs >= filter.ToMs {
			continue
		}
		out = append(out, entry)
	}
	// Insertion order is not stable for maps; sort by start time like the
	// real repository.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].StartsAtMs < out[i].StartsAtMs {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (m *memEventIndex) Count(ctx context.Context, filter repository.EventIndexFilter) (int64, error) {
	entries, _ := m.List(ctx, filter)
	return int64(len(entries)), nil
}

var _ repository.EventIndexRepository = (*memEventIndex)(nil)
