package store

import (
	"database/sql"

	"github.com/skyfare/bookingd/internal/logger"
	"github.com/skyfare/bookingd/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded goose migrations. Only the PostgreSQL
// backend uses goose; the SQLite backend bootstraps its schema inline.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
