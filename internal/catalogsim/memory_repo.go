package catalogsim

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

type memoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Record
}

func NewMemoryRepo() Repository {
	return &memoryRepo{
		byID: make(map[string]Record),
	}
}

func (r *memoryRepo) Create(ctx context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[rec.ID]; !exists {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *memoryRepo) List(ctx context.Context) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Record, 0, len(r.byID))
	for _, rec := range r.byID {
		out = append(out, rec)
	}

	// Orden estable por created asc, desempate por id
	sort.Slice(out, func(i, j int) bool {
		if out[i].Created.Equal(out[j].Created) {
			return out[i].ID < out[j].ID
		}
		return out[i].Created.Before(out[j].Created)
	})
	return out, nil
}
