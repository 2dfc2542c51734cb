package catalog

import (
	"context"
	"errors"

	"pet-adoption-hub/internal/domain/pets"
)

var ErrNotFound = errors.New("pet not found")

// PetInput es el cuerpo de create/update. En update los campos vacíos no se tocan.
type PetInput struct {
	Name           string              `json:"name,omitempty"`
	Species        string              `json:"species,omitempty"`
	Breed          string              `json:"breed,omitempty"`
	Age            *int                `json:"age,omitempty"`
	Gender         string              `json:"gender,omitempty"`
	Size           string              `json:"size,omitempty"`
	Color          string              `json:"color,omitempty"`
	Description    string              `json:"description,omitempty"`
	Location       string              `json:"location,omitempty"`
	AdoptionStatus pets.AdoptionStatus `json:"adoptionStatus,omitempty"`
	Image          *pets.Image         `json:"image,omitempty"`
}

// Catalog es el servicio remoto de mascotas. Las escrituras requieren token.
type Catalog interface {
	ListPets(ctx context.Context) ([]pets.Pet, error)
	GetPet(ctx context.Context, id string) (pets.Pet, error)
	CreatePet(ctx context.Context, token string, in PetInput) (pets.Pet, error)
	UpdatePet(ctx context.Context, token, id string, in PetInput) (pets.Pet, error)
	SetAdoptionStatus(ctx context.Context, token, id string, status pets.AdoptionStatus) (pets.Pet, error)
	DeletePet(ctx context.Context, token, id string) error
}

// ErrUpstream envuelve cualquier fallo del servicio remoto (red o no-2xx).
var ErrUpstream = errors.New("catalog service error")

// RemoteError lo implementan los errores estructurados del servicio remoto,
// para poder mostrar el motivo tal cual.
type RemoteError interface {
	error
	HTTPStatus() int
	Reasons() []string
}
