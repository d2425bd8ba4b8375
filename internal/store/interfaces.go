package store

import (
	"context"
	"encoding/json"
	"time"
)

// Version is the opaque version token attached to every stored document.
// It changes on every successful Replace; callers pass it back to Replace
// to detect concurrent mutation.
type Version int64

// DocumentStore is the key-value document API backing all user records.
//
// Implementations must be safe for concurrent use: requests may race on the
// same key from independent goroutines (or, in a multi-process deployment,
// from independent processes), and the conditional Replace is the only
// consistency primitive callers rely on.
type DocumentStore interface {
	// Get returns the document stored under key together with its current
	// version token. Returns ErrKeyNotFound for absent or expired keys.
	Get(ctx context.Context, key string) (json.RawMessage, Version, error)

	// Insert stores a new document under key with the given ttl
	// (0 = never expires). Returns ErrKeyAlreadyExists if the key is
	// already present; an existing document is never overwritten.
	Insert(ctx context.Context, key string, doc json.RawMessage, ttl time.Duration) error

	// Replace overwrites the document under key only if its current
	// version equals expected. Returns ErrVersionMismatch when another
	// writer got there first, ErrKeyNotFound when the key is absent.
	Replace(ctx context.Context, key string, doc json.RawMessage, expected Version) error
}
