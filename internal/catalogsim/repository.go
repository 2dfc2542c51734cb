package catalogsim

import (
	"context"
	"errors"
	"time"

	"pet-adoption-hub/internal/domain/pets"
)

var ErrNotFound = errors.New("not found")

// Record es una mascota tal como la guarda el catálogo, con timestamps.
type Record struct {
	pets.Pet
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

type Repository interface {
	Create(ctx context.Context, r Record) error
	Update(ctx context.Context, r Record) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Record, error)
}
