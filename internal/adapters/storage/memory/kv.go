package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-adoption-hub/internal/ports/storage"
)

// KV es el backend en memoria (modo dev y tests). No sobrevive reinicios.
type KV struct {
	mu    sync.RWMutex
	byKey map[string][]byte
}

func NewKV() *KV {
	return &KV{byKey: make(map[string][]byte)}
}

func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.byKey[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *KV) Put(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("key required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	s.byKey[key] = v
	return nil
}

func (s *KV) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byKey, key)
	return nil
}

// Keys lista las claves con un prefijo dado (útil para inspección/tests).
func (s *KV) Keys(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0)
	for k := range s.byKey {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

var _ storage.KV = (*KV)(nil)
