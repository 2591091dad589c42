package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/beautique-shop/storefront/internal/cart/model"
	"github.com/beautique-shop/storefront/internal/cart/repo/migrations"
	errx "github.com/beautique-shop/storefront/internal/core/error"
	logx "github.com/beautique-shop/storefront/pkg/logger"
)

// SQLiteStorage keeps cart values in a single key/value table.
type SQLiteStorage struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStorage applies the embedded schema and returns the storage.
func NewSQLiteStorage(ctx context.Context, db *sql.DB) (*SQLiteStorage, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlite db is required")
	}
	schema, err := migrations.FS.ReadFile(migrations.KVSchema)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return nil, fmt.Errorf("apply schema: %w", errx.WrapSQLite(err))
	}
	return &SQLiteStorage{db: db, now: time.Now}, nil
}

func (s *SQLiteStorage) Read(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE store_key = ?`, key).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			logx.Error().Err(err).Str("key", key).Msg("failed to read key from sqlite")
		}
		return "", errx.WrapSQLite(err)
	}
	return value, nil
}

func (s *SQLiteStorage) Write(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_store (store_key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(store_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to write key to sqlite")
		return errx.WrapSQLite(err)
	}
	return nil
}

var _ model.Storage = (*SQLiteStorage)(nil)
