package pets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/platform/state"
)

var ErrNoSource = errors.New("pets: no catalog source configured")

// Source es lo único que la cache necesita del catálogo remoto.
type Source interface {
	ListPets(ctx context.Context) ([]Pet, error)
}

const (
	actionRefresh    state.Action = "pets/refresh"
	actionReplaceAll state.Action = "pets/replace_all"
	actionSetStatus  state.Action = "pets/set_adoption_status"
	actionUpsert     state.Action = "pets/upsert"
	actionRemove     state.Action = "pets/remove"
)

// Cache es el espejo local del catálogo. Cada mutación reemplaza el slice
// completo (copy-on-write), así que un snapshot leído nunca cambia.
type Cache struct {
	src   Source
	store *state.Store[[]Pet]
	log   logger.Logger
}

// NewCache crea la cache con un contenido inicial (p.ej. hidratado del storage)
// y los middleware del store (persistencia, logging).
func NewCache(src Source, initial []Pet, log logger.Logger, mws ...state.Middleware[[]Pet]) *Cache {
	return &Cache{
		src:   src,
		store: state.New(normalizeAll(initial), mws...),
		log:   logger.OrNop(log).With(logger.Fields{"component": "pet_cache"}),
	}
}

// Refresh trae la colección completa y reemplaza la cache. Si falla, la cache
// queda intacta y el error vuelve al caller (sin reintentos).
func (c *Cache) Refresh(ctx context.Context) error {
	if c.src == nil {
		return ErrNoSource
	}

	items, err := c.src.ListPets(ctx)
	if err != nil {
		c.log.Warn("catalog refresh failed", logger.Fields{"err": err})
		return fmt.Errorf("refresh catalog: %w", err)
	}

	next := normalizeAll(items)
	c.store.Dispatch(actionRefresh, func([]Pet) ([]Pet, bool) { return next, true })
	c.log.Debug("catalog refreshed", logger.Fields{"count": len(next)})
	return nil
}

func (c *Cache) ReplaceAll(items []Pet) {
	next := normalizeAll(items)
	c.store.Dispatch(actionReplaceAll, func([]Pet) ([]Pet, bool) { return next, true })
}

// SetAdoptionStatus actualiza solo el status de una mascota.
// Si el id no está en cache es un no-op (devuelve false).
func (c *Cache) SetAdoptionStatus(petID string, status AdoptionStatus) bool {
	status = ParseAdoptionStatus(string(status))

	return c.store.Dispatch(actionSetStatus, func(cur []Pet) ([]Pet, bool) {
		i := indexOf(cur, petID)
		if i < 0 {
			return cur, false
		}
		if cur[i].AdoptionStatus == status {
			return cur, false
		}
		next := make([]Pet, len(cur))
		copy(next, cur)
		next[i].AdoptionStatus = status
		return next, true
	})
}

// Upsert inserta o reemplaza un registro (después de un create/update remoto).
func (c *Cache) Upsert(p Pet) {
	p = Normalize(p)
	if strings.TrimSpace(p.ID) == "" {
		return
	}

	c.store.Dispatch(actionUpsert, func(cur []Pet) ([]Pet, bool) {
		i := indexOf(cur, p.ID)
		next := make([]Pet, len(cur), len(cur)+1)
		copy(next, cur)
		if i < 0 {
			next = append(next, p)
		} else {
			next[i] = p
		}
		return next, true
	})
}

// Remove saca una mascota de la cache; no-op si ya no estaba.
func (c *Cache) Remove(petID string) bool {
	return c.store.Dispatch(actionRemove, func(cur []Pet) ([]Pet, bool) {
		i := indexOf(cur, petID)
		if i < 0 {
			return cur, false
		}
		next := make([]Pet, 0, len(cur)-1)
		next = append(next, cur[:i]...)
		next = append(next, cur[i+1:]...)
		return next, true
	})
}

// All devuelve el snapshot actual (solo lectura).
func (c *Cache) All() []Pet { return c.store.Get() }

// Snapshot devuelve el snapshot y su versión (clave de memoización para browse).
func (c *Cache) Snapshot() ([]Pet, uint64) { return c.store.Snapshot() }

func (c *Cache) Version() uint64 { return c.store.Version() }

func (c *Cache) Len() int { return len(c.store.Get()) }

func (c *Cache) Get(petID string) (Pet, bool) {
	cur := c.store.Get()
	i := indexOf(cur, petID)
	if i < 0 {
		return Pet{}, false
	}
	return cur[i], true
}

// ListByOwner devuelve las mascotas publicadas por ownerName.
func (c *Cache) ListByOwner(ownerName string) []Pet {
	ownerName = strings.TrimSpace(ownerName)
	out := make([]Pet, 0)
	if ownerName == "" {
		return out
	}
	for _, p := range c.store.Get() {
		if p.OwnerName() == ownerName {
			out = append(out, p)
		}
	}
	return out
}

// Species lista las especies distintas (en minúsculas, ordenadas) para los filtros.
func (c *Cache) Species() []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, p := range c.store.Get() {
		s := strings.ToLower(strings.TrimSpace(p.Species))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Subscribe notifica cada commit de la cache.
func (c *Cache) Subscribe(fn func([]Pet)) (unsubscribe func()) {
	return c.store.Subscribe(fn)
}

func indexOf(items []Pet, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func normalizeAll(items []Pet) []Pet {
	out := make([]Pet, 0, len(items))
	for _, p := range items {
		out = append(out, Normalize(p))
	}
	return out
}
