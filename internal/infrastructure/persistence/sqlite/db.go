// Package sqlite provides the server-side database connection.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Config holds database configuration
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DB wraps sql.DB with schema management.
type DB struct {
	*sql.DB
	logger *zap.Logger
}

const schema = `
	CREATE TABLE IF NOT EXISTS bills (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL DEFAULT '',
		amount REAL NOT NULL DEFAULT 0,
		vat TEXT NOT NULL DEFAULT '',
		pct INTEGER NOT NULL DEFAULT 0,
		commentary TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		file_url TEXT NOT NULL DEFAULT '',
		file_name TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_bills_email ON bills(email);
`

// New creates a new database connection.
func New(cfg Config, logger *zap.Logger) (*DB, error) {
	// WAL mode for better concurrency
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", cfg.Path)

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{
		DB:     sqlDB,
		logger: logger,
	}

	logger.Info("Database connection established", zap.String("path", cfg.Path))
	return db, nil
}

// Migrate applies the schema.
func (db *DB) Migrate() error {
	if _, err := db.Exec(schema); err != nil {
		db.logger.Error("Failed to apply schema", zap.Error(err))
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	db.logger.Info("Closing database connection")
	return db.DB.Close()
}
