// Package sqlite opens SQLite handles backed by the pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

type Config struct {
	Path string `default:"storefront.db"`
}

// Open opens the database at cfg.Path in WAL mode and verifies the connection.
func (c *Config) Open(ctx context.Context) (*sql.DB, error) {
	if strings.TrimSpace(c.Path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(c.Path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// writes are serialised through one connection
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}
