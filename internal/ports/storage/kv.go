package storage

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("storage: key not found")

// KV es el almacenamiento durable clave/valor (equivalente a localStorage).
// Los valores son opacos; los stores guardan JSON.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Nombres lógicos de los stores persistidos.
const (
	StoreAuth             = "auth"
	StorePets             = "pets"
	StoreAdoptionRequests = "adoption-requests"
	StorePreferences      = "preferences"
)

// Key arma la clave namespaced "<namespace>/<store>".
func Key(namespace, store string) string {
	namespace = strings.Trim(strings.TrimSpace(namespace), "/")
	if namespace == "" {
		namespace = "default"
	}
	return namespace + "/" + strings.TrimSpace(store)
}
