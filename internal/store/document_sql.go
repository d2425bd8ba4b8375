package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/skyfare/bookingd/internal/logger"
)

// sqlDocumentStore is the SQL-backed implementation of [DocumentStore],
// shared by the PostgreSQL and SQLite backends. The two differ only in
// placeholder format and in how a primary-key conflict surfaces from the
// driver, both of which are injected at construction.
//
// Every method obtains a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type sqlDocumentStore struct {
	db      *DB
	builder sq.StatementBuilderType

	// isKeyConflict reports whether a driver error is a primary-key
	// violation on the documents table.
	isKeyConflict func(error) bool

	// now is the clock used for expiry checks; replaced in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewPostgresDocumentStore constructs a [DocumentStore] backed by the given
// PostgreSQL connection.
func NewPostgresDocumentStore(db *DB, logger *logger.Logger) DocumentStore {
	logger.Debug().Msg("creating postgres document store")
	return &sqlDocumentStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		isKeyConflict: func(err error) bool {
			return postgresError(err) == pgerrcode.UniqueViolation
		},
		now:    time.Now,
		logger: logger,
	}
}

// NewSQLiteDocumentStore constructs a [DocumentStore] backed by the given
// SQLite connection.
func NewSQLiteDocumentStore(db *DB, logger *logger.Logger) DocumentStore {
	logger.Debug().Msg("creating sqlite document store")
	return &sqlDocumentStore{
		db:            db,
		builder:       sq.StatementBuilder.PlaceholderFormat(sq.Question),
		isKeyConflict: isSQLiteConstraintViolation,
		now:           time.Now,
		logger:        logger,
	}
}

// Get returns the live document stored under key with its version token.
// Rows past their expiry are treated as absent.
func (s *sqlDocumentStore) Get(ctx context.Context, key string) (json.RawMessage, Version, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Select("doc", "version").
		From("documents").
		Where(sq.Eq{"key": key}).
		Where(s.notExpired()).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "sqlDocumentStore.Get").Str("key", key).Msg("failed to build query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var doc []byte
	var version Version
	row := s.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&doc, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrKeyNotFound
		}
		log.Err(err).Str("func", "sqlDocumentStore.Get").Str("key", key).Msg("failed to scan document row")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return doc, version, nil
}

// Insert stores a new document under key. Expired leftovers under the same
// key are evicted first so a lapsed account does not block re-registration.
func (s *sqlDocumentStore) Insert(ctx context.Context, key string, doc json.RawMessage, ttl time.Duration) error {
	log := logger.FromContext(ctx)

	if err := s.evictExpired(ctx, key); err != nil {
		return err
	}

	now := s.now()
	var expiresAt any
	if ttl > 0 {
		expiresAt = now.Add(ttl)
	}

	query, args, err := s.builder.
		Insert("documents").
		Columns("key", "doc", "version", "created_at", "expires_at").
		Values(key, []byte(doc), 1, now, expiresAt).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "sqlDocumentStore.Insert").Str("key", key).Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if s.isKeyConflict(err) {
			return ErrKeyAlreadyExists
		}
		log.Err(err).Str("func", "sqlDocumentStore.Insert").Str("key", key).Msg("failed to insert document")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Replace overwrites the document under key only when its stored version
// still equals expected, bumping the version on success.
func (s *sqlDocumentStore) Replace(ctx context.Context, key string, doc json.RawMessage, expected Version) error {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Update("documents").
		Set("doc", []byte(doc)).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"key": key, "version": expected}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "sqlDocumentStore.Replace").Str("key", key).Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sqlDocumentStore.Replace").Str("key", key).Msg("failed to update document")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "sqlDocumentStore.Replace").Str("key", key).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// Zero rows means either a version race or a missing key; probe to
	// tell the two apart so callers can retry only the former.
	if _, _, err := s.Get(ctx, key); err != nil {
		return err
	}

	return ErrVersionMismatch
}

// evictExpired removes a lapsed row under key, if any.
func (s *sqlDocumentStore) evictExpired(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Delete("documents").
		Where(sq.Eq{"key": key}).
		Where(sq.LtOrEq{"expires_at": s.now()}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "sqlDocumentStore.evictExpired").Str("key", key).Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "sqlDocumentStore.evictExpired").Str("key", key).Msg("failed to evict expired document")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (s *sqlDocumentStore) notExpired() sq.Or {
	return sq.Or{
		sq.Eq{"expires_at": nil},
		sq.Gt{"expires_at": s.now()},
	}
}
