package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-adoption-hub/internal/ports/storage"
)

// KV es el backend durable por defecto: un archivo local, como localStorage.
type KV struct {
	db  *sql.DB
	now func() time.Time
}

func NewKV(db *sql.DB) *KV {
	return &KV{db: db, now: time.Now}
}

func (r *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE key = ?`, strings.TrimSpace(key),
	).Scan(&value)
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
	if value == nil {
		value = []byte{}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, r.now().UTC().Format(time.RFC3339Nano))
	return err
}

func (r *KV) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, strings.TrimSpace(key))
	return err
}

var _ storage.KV = (*KV)(nil)
