package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/migrations"
)

// Database dialects supported by the store.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// DB wraps the raw connection with the dialect it speaks and a classifier
// for transient failures.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies all pending schema migrations for the DB's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// builder returns a squirrel statement builder with the placeholder format
// of the DB's dialect ($N for postgres, ? for sqlite).
func (db *DB) builder() sq.StatementBuilderType {
	if db.dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// execWithRetry runs a DML statement, retrying once when the classifier
// reports the failure as transient (connection loss, deadlock rollback).
func (db *DB) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err == nil || db.errorClassificator == nil {
		return res, err
	}

	if db.errorClassificator.Classify(err) != Retryable {
		return nil, err
	}

	db.logger.Warn().Err(err).Msg("retrying statement after transient db error")
	res, retryErr := db.ExecContext(ctx, query, args...)
	if retryErr != nil {
		return nil, fmt.Errorf("retry failed: %w", retryErr)
	}
	return res, nil
}
