package store

import "errors"

// Sentinel errors returned by [DocumentStore] implementations to signal
// well-known failure conditions. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrKeyAlreadyExists is returned by Insert when a document with the
	// same key is already present in the store.
	ErrKeyAlreadyExists = errors.New("document key already exists")

	// ErrKeyNotFound is returned by Get and Replace when no live document
	// exists under the requested key (absent or expired).
	ErrKeyNotFound = errors.New("document key not found")

	// ErrVersionMismatch is returned by Replace when an optimistic-locking
	// check fails: the version supplied by the caller does not match the
	// current version stored under the key, meaning another writer has
	// modified the document since it was last read.
	ErrVersionMismatch = errors.New("document version mismatch")
)

// Low-level database operation errors. These are returned (or wrapped) by
// the SQL-backed stores when a driver-level operation fails before any
// domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a statement against the
	// database fails (network, timeout, unavailable backend).
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row fails.
	ErrScanningRow = errors.New("failed to scan document row")
)
