package app

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/domain/pets"
	"pet-adoption-hub/internal/domain/session"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/ports/catalog"
)

// RefreshCatalog reemplaza la cache con el catálogo remoto y después vuelve
// a marcar como Adopted las mascotas con una solicitud aprobada en el ledger.
// Si falla, la cache queda como estaba.
func (s *Service) RefreshCatalog(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "app.refresh_catalog")
	defer span.End()

	if err := s.pets.Refresh(ctx); err != nil {
		span.RecordError(err)
		return 0, err
	}

	overlaid := 0
	for id := range s.ledger.ApprovedPetIDs() {
		if s.pets.SetAdoptionStatus(id, pets.StatusAdopted) {
			overlaid++
		}
	}

	n := s.pets.Len()
	span.SetAttributes(attribute.Int("pets.count", n), attribute.Int("pets.overlaid", overlaid))
	s.log.Info("catalog refreshed", logger.Fields{"count": n, "overlaid": overlaid})
	return n, nil
}

// Detail es la vista de una mascota para el usuario actual.
type Detail struct {
	Pet       pets.Pet `json:"pet"`
	IsOwner   bool     `json:"isOwner"`
	AdoptedBy string   `json:"adoptedBy,omitempty"`

	CanAdopt   bool `json:"canAdopt"`
	HasPending bool `json:"hasPendingRequest"`
	LoggedIn   bool `json:"loggedIn"`

	// Requests solo se llena para el dueño.
	Requests []adoptions.Request `json:"requests,omitempty"`
}

// PetDetail lee de la cache; si la mascota no está, la pide al catálogo y la
// agrega a la cache.
func (s *Service) PetDetail(ctx context.Context, petID string) (Detail, error) {
	p, err := s.lookupPet(ctx, petID)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{Pet: p}
	if who, ok := s.ledger.ApprovedRequester(p.ID); ok {
		d.AdoptedBy = who
	}

	id, ok := s.session.Current()
	if !ok {
		return d, nil
	}

	d.LoggedIn = true
	d.IsOwner = pets.IsOwner(p, id.Name)
	d.HasPending = s.ledger.HasPending(p.ID, id.Name)
	d.CanAdopt = !d.IsOwner && !p.IsAdopted() && !d.HasPending
	if d.IsOwner {
		d.Requests = s.ledger.GetRequestsForPet(p.ID)
	}
	return d, nil
}

func (s *Service) lookupPet(ctx context.Context, petID string) (pets.Pet, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return pets.Pet{}, ErrPetNotFound
	}
	if p, ok := s.pets.Get(petID); ok {
		return p, nil
	}

	p, err := s.catalog.GetPet(ctx, petID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return pets.Pet{}, ErrPetNotFound
		}
		return pets.Pet{}, err
	}
	if p.ID != petID {
		s.log.Warn("catalog returned a different pet", logger.Fields{"pet_id": petID, "got": p.ID})
		return pets.Pet{}, ErrPetNotFound
	}
	s.pets.Upsert(p)
	cached, ok := s.pets.Get(petID)
	if !ok {
		return pets.Pet{}, ErrPetNotFound
	}
	return cached, nil
}

// MyPets son las mascotas publicadas por el usuario actual.
func (s *Service) MyPets() ([]pets.Pet, error) {
	id, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	return s.pets.ListByOwner(id.Name), nil
}

func (s *Service) CreatePet(ctx context.Context, in catalog.PetInput) (pets.Pet, error) {
	ctx, span := s.tracer.Start(ctx, "app.create_pet")
	defer span.End()

	id, err := s.requireUser()
	if err != nil {
		return pets.Pet{}, err
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Species) == "" {
		return pets.Pet{}, ErrInvalidInput
	}

	p, err := s.catalog.CreatePet(ctx, id.Credential, in)
	if err != nil {
		return pets.Pet{}, err
	}
	s.pets.Upsert(p)
	s.log.Info("pet created", logger.Fields{"pet_id": p.ID, "owner": id.Name})
	return pets.Normalize(p), nil
}

func (s *Service) UpdatePet(ctx context.Context, petID string, in catalog.PetInput) (pets.Pet, error) {
	ctx, span := s.tracer.Start(ctx, "app.update_pet", trace.WithAttributes(attribute.String("pet.id", petID)))
	defer span.End()

	id, err := s.requireOwner(petID)
	if err != nil {
		return pets.Pet{}, err
	}

	p, err := s.catalog.UpdatePet(ctx, id.Credential, petID, in)
	if err != nil {
		return pets.Pet{}, err
	}
	s.pets.Upsert(p)
	return pets.Normalize(p), nil
}

func (s *Service) DeletePet(ctx context.Context, petID string) error {
	ctx, span := s.tracer.Start(ctx, "app.delete_pet", trace.WithAttributes(attribute.String("pet.id", petID)))
	defer span.End()

	id, err := s.requireOwner(petID)
	if err != nil {
		return err
	}

	if err := s.catalog.DeletePet(ctx, id.Credential, petID); err != nil {
		return err
	}
	s.pets.Remove(petID)
	s.log.Info("pet deleted", logger.Fields{"pet_id": petID, "owner": id.Name})
	return nil
}

// requireOwner exige sesión y que la mascota (en cache) sea del usuario.
func (s *Service) requireOwner(petID string) (session.Identity, error) {
	id, err := s.requireUser()
	if err != nil {
		return id, err
	}
	p, ok := s.pets.Get(petID)
	if !ok {
		return id, ErrPetNotFound
	}
	if !pets.IsOwner(p, id.Name) {
		return id, ErrForbidden
	}
	return id, nil
}
