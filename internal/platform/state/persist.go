package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/ports/storage"
)

const persistTimeout = 3 * time.Second

// ErrCorrupt indica que el valor guardado no es JSON válido para el store.
var ErrCorrupt = errors.New("state: stored value is corrupt")

// Persist serializa el valor a JSON y lo guarda en kv después de cada commit.
// Un fallo de escritura se loguea pero no revierte el estado en memoria
// (mismo contrato que localStorage: best-effort).
func Persist[T any](kv storage.KV, key string, log logger.Logger) Middleware[T] {
	log = logger.OrNop(log).With(logger.Fields{"store_key": key})

	return func(next Commit[T]) Commit[T] {
		return func(action Action, v T) {
			next(action, v)

			b, err := json.Marshal(v)
			if err != nil {
				log.Error("state: marshal failed", logger.Fields{"action": string(action), "err": err})
				return
			}

			ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
			defer cancel()

			if err := kv.Put(ctx, key, b); err != nil {
				log.Warn("state: persist failed", logger.Fields{"action": string(action), "err": err})
			}
		}
	}
}

// Logging deja una línea debug por cada acción comprometida.
func Logging[T any](log logger.Logger, store string) Middleware[T] {
	log = logger.OrNop(log).With(logger.Fields{"store": store})

	return func(next Commit[T]) Commit[T] {
		return func(action Action, v T) {
			next(action, v)
			log.Debug("state: committed", logger.Fields{"action": string(action)})
		}
	}
}

// Hydrate carga en dst el valor persistido bajo key. Devuelve false si no existe.
func Hydrate[T any](ctx context.Context, kv storage.KV, key string, dst *T) (bool, error) {
	b, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("hydrate %s: %w", key, err)
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("hydrate %s: %w: %v", key, ErrCorrupt, err)
	}
	return true, nil
}
