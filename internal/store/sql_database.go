package store

import (
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/migrations"
)

// Dialect names, equal to the goose dialects the migrations are run with.
const (
	dialectPostgres = "pgx"
	dialectSQLite   = "sqlite3"
)

// DB is an opened SQL connection together with its dialect specifics.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// statementBuilder returns a squirrel builder using the placeholder format of
// the connection's dialect: $n for PostgreSQL, ? for SQLite.
func (db *DB) statementBuilder() sq.StatementBuilderType {
	if db.dialect == dialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}

	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// isUniqueViolation reports whether err is a unique constraint violation
// raised by either supported driver.
func (db *DB) isUniqueViolation(err error) bool {
	if db.dialect == dialectPostgres {
		return isPostgresUniqueViolation(err)
	}

	return isSQLiteUniqueViolation(err)
}

// classify returns the retry classification of err, defaulting to
// [NonRetryable] when no classifier is configured.
func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}

	return db.errorClassificator.Classify(err)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
