package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-adoption-hub/internal/ports/storage"
)

type KV struct {
	db  *sql.DB
	now func() time.Time
}

func NewKV(db *sql.DB) *KV {
	return &KV{db: db, now: time.Now}
}

func (r *KV) Get(ctx context.Context, key string) ([]byte, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, storage.ErrNotFound
	}

	var value []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT value FROM kv_entries WHERE key = $1
	`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *KV) Put(ctx context.Context, key string, value []byte) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("key required")
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, value, r.now().UTC())
	return err
}

func (r *KV) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = $1`, strings.TrimSpace(key))
	return err
}

var _ storage.KV = (*KV)(nil)
