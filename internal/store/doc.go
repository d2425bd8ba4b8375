// Package store implements the document store the booking service keeps
// user records in.
//
// The store is a key-value document API: each user record is a single JSON
// document keyed by username, carrying a version token that enables
// optimistic concurrency. Replace writes succeed only when the supplied
// version matches the current one, which is how concurrent booking appends
// for the same user are detected without in-process locks.
//
// Three backends implement [DocumentStore]: PostgreSQL (pgx), SQLite, and
// an in-memory map used by tests and DSN-less development runs.
package store
