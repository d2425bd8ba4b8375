package store

import (
	"context"
	"fmt"

	"github.com/skyfare/bookingd/internal/config"
	"github.com/skyfare/bookingd/internal/logger"
)

// Storages bundles every persistence backend the service depends on.
type Storages struct {
	Documents DocumentStore
}

// NewStorages constructs the document store selected by cfg.
//
// The "pgx" backend connects to PostgreSQL and applies the embedded goose
// migrations; "sqlite3" opens (and bootstraps) a local database file;
// "memory" needs no external resources.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	switch cfg.DB.Driver {
	case "pgx":
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(); err != nil {
			return nil, fmt.Errorf("error migrating database: %w", err)
		}
		return &Storages{Documents: NewPostgresDocumentStore(db, log)}, nil

	case "sqlite3":
		db, err := NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return &Storages{Documents: NewSQLiteDocumentStore(db, log)}, nil

	case "memory":
		return &Storages{Documents: NewMemoryDocumentStore(log)}, nil

	default:
		return nil, fmt.Errorf("unknown document store driver %q", cfg.DB.Driver)
	}
}
