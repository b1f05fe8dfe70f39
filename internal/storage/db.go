// Package storage persists custom ranking uploads in SQLite.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Config holds database settings.
type Config struct {
	// Path is the SQLite file. Parent directories are created on Open.
	Path         string
	MaxOpenConns int
	BusyTimeout  time.Duration
	JournalMode  string
	Synchronous  string
	// AutoMigrate applies pending migrations before the pool is opened.
	AutoMigrate bool
}

// DefaultConfig returns settings suited to a single local process.
func DefaultConfig(path string) Config {
	return Config{
		Path:         path,
		MaxOpenConns: 4,
		BusyTimeout:  5 * time.Second,
		JournalMode:  "WAL",
		Synchronous:  "NORMAL",
		AutoMigrate:  true,
	}
}

// DB wraps the connection pool.
type DB struct {
	conn *sql.DB
	path string
}

// Open connects to the database at cfg.Path, migrating it first when
// AutoMigrate is set.
func Open(cfg Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if cfg.AutoMigrate {
		if err := migrateUp(cfg.Path); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(%s)&_pragma=synchronous(%s)&_pragma=foreign_keys(1)",
		cfg.Path, cfg.BusyTimeout.Milliseconds(), cfg.JournalMode, cfg.Synchronous)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{conn: conn, path: cfg.Path}, nil
}

// Conn returns the underlying pool.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the database file.
func (db *DB) Path() string {
	return db.path
}

// Close closes the pool.
func (db *DB) Close() error {
	return db.conn.Close()
}
