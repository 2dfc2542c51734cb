package catalogsim

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-adoption-hub/internal/domain/pets"
	"pet-adoption-hub/internal/ports/catalog"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Create(ctx context.Context, owner pets.Owner, in catalog.PetInput) (Record, error) {
	if strings.TrimSpace(owner.Name) == "" {
		return Record{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Species) == "" {
		return Record{}, ErrInvalidInput
	}

	now := s.now().UTC()
	rec := Record{
		Pet: pets.Pet{
			ID:             uuid.NewString(),
			AdoptionStatus: pets.StatusAvailable,
			Owner:          &pets.Owner{Name: owner.Name, Email: owner.Email},
		},
		Created: now,
		Updated: now,
	}
	apply(&rec.Pet, in)
	rec.Pet = pets.Normalize(rec.Pet)

	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Update aplica solo los campos presentes. Solo el dueño puede editar.
func (s *Service) Update(ctx context.Context, id, userName string, in catalog.PetInput) (Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if rec.OwnerName() != userName {
		return Record{}, ErrForbidden
	}

	apply(&rec.Pet, in)
	rec.Pet = pets.Normalize(rec.Pet)
	rec.Updated = s.now().UTC()

	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id, userName string) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.OwnerName() != userName {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Record, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}

func apply(p *pets.Pet, in catalog.PetInput) {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&p.Name, in.Name)
	set(&p.Species, in.Species)
	set(&p.Breed, in.Breed)
	set(&p.Gender, in.Gender)
	set(&p.Size, in.Size)
	set(&p.Color, in.Color)
	set(&p.Description, in.Description)
	set(&p.Location, in.Location)

	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.AdoptionStatus != "" {
		p.AdoptionStatus = pets.ParseAdoptionStatus(string(in.AdoptionStatus))
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
}
