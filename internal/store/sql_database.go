package store

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/migrations"
)

const (
	driverSQLite   = "sqlite3"
	driverPostgres = "pgx"
)

// DB is a database handle bound to one SQL dialect. Queries are built with
// the dialect's squirrel statement builder.
type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, driver string, log *logger.Logger) *DB {
	db := &DB{
		DB:      conn,
		driver:  driver,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  log,
	}
	if driver == driverPostgres {
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		db.errorClassificator = NewPostgresErrorClassifier()
	}

	return db
}

// Migrate applies the schema matching the handle's dialect.
func (db *DB) Migrate() error {
	switch db.driver {
	case driverSQLite:
		return migrations.MigrateClient(db.DB)
	case driverPostgres:
		return migrations.MigrateServer(db.DB)
	default:
		return fmt.Errorf("migration error: unsupported driver %q", db.driver)
	}
}
