package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/skyfare/bookingd/internal/logger"
)

// memoryDocument is a single stored entry of the in-memory backend.
type memoryDocument struct {
	doc       json.RawMessage
	version   Version
	expiresAt time.Time // zero = never expires
}

// memoryDocumentStore is the in-memory implementation of [DocumentStore],
// used by tests and by development runs without a configured DSN.
//
// A single mutex guards the map; version tokens advance by one on every
// successful Replace, mirroring the SQL backends.
type memoryDocumentStore struct {
	mu        sync.Mutex
	documents map[string]memoryDocument

	// now is the clock used for expiry checks; replaced in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewMemoryDocumentStore constructs an empty in-memory [DocumentStore].
func NewMemoryDocumentStore(logger *logger.Logger) DocumentStore {
	logger.Debug().Msg("creating in-memory document store")
	return &memoryDocumentStore{
		documents: make(map[string]memoryDocument),
		now:       time.Now,
		logger:    logger,
	}
}

func (m *memoryDocumentStore) Get(ctx context.Context, key string) (json.RawMessage, Version, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.live(key)
	if !ok {
		return nil, 0, ErrKeyNotFound
	}

	// Hand out a copy: callers must never observe later mutations.
	doc := make(json.RawMessage, len(entry.doc))
	copy(doc, entry.doc)

	return doc, entry.version, nil
}

func (m *memoryDocumentStore) Insert(ctx context.Context, key string, doc json.RawMessage, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.live(key); ok {
		return ErrKeyAlreadyExists
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}

	stored := make(json.RawMessage, len(doc))
	copy(stored, doc)

	m.documents[key] = memoryDocument{
		doc:       stored,
		version:   1,
		expiresAt: expiresAt,
	}

	return nil
}

func (m *memoryDocumentStore) Replace(ctx context.Context, key string, doc json.RawMessage, expected Version) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.live(key)
	if !ok {
		return ErrKeyNotFound
	}

	if entry.version != expected {
		return ErrVersionMismatch
	}

	stored := make(json.RawMessage, len(doc))
	copy(stored, doc)

	entry.doc = stored
	entry.version++
	m.documents[key] = entry

	return nil
}

// live returns the entry under key if present and not expired, evicting a
// lapsed entry as a side effect. Callers must hold m.mu.
func (m *memoryDocumentStore) live(key string) (memoryDocument, bool) {
	entry, ok := m.documents[key]
	if !ok {
		return memoryDocument{}, false
	}

	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(m.now()) {
		delete(m.documents, key)
		return memoryDocument{}, false
	}

	return entry, true
}
