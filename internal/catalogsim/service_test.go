package catalogsim

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption-hub/internal/domain/pets"
	"pet-adoption-hub/internal/ports/auth"
	"pet-adoption-hub/internal/ports/catalog"
)

func newTestService() *Service {
	s := NewService(NewMemoryRepo())
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	n := 0
	s.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return s
}

func TestService_CreateValidates(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	if _, err := s.Create(ctx, pets.Owner{}, catalog.PetInput{Name: "Rex", Species: "Dog"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without owner, got %v", err)
	}
	if _, err := s.Create(ctx, pets.Owner{Name: "alice"}, catalog.PetInput{Name: "Rex"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without species, got %v", err)
	}

	rec, err := s.Create(ctx, pets.Owner{Name: "alice"}, catalog.PetInput{Name: " Rex ", Species: "Dog"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID == "" || rec.Name != "Rex" || rec.OwnerName() != "alice" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.AdoptionStatus != pets.StatusAvailable {
		t.Fatalf("expected Available, got %q", rec.AdoptionStatus)
	}
}

func TestService_UpdateIsPartialAndOwnerOnly(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	age := 4
	rec, err := s.Create(ctx, pets.Owner{Name: "alice"}, catalog.PetInput{Name: "Rex", Species: "Dog", Breed: "Lab", Age: &age})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.Update(ctx, rec.ID, "bob", catalog.PetInput{Name: "Stolen"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := s.Update(ctx, rec.ID, "alice", catalog.PetInput{AdoptionStatus: "adopted"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.AdoptionStatus != pets.StatusAdopted {
		t.Fatalf("expected Adopted, got %q", updated.AdoptionStatus)
	}
	if updated.Name != "Rex" || updated.Breed != "Lab" || updated.Age != 4 {
		t.Fatalf("partial update touched other fields: %+v", updated.Pet)
	}
	if !updated.Updated.After(rec.Created) {
		t.Fatalf("expected Updated > Created")
	}

	if _, err := s.Update(ctx, "missing", "alice", catalog.PetInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_DeleteAndListOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	a, _ := s.Create(ctx, pets.Owner{Name: "alice"}, catalog.PetInput{Name: "A", Species: "Cat"})
	b, _ := s.Create(ctx, pets.Owner{Name: "alice"}, catalog.PetInput{Name: "B", Species: "Cat"})
	c, _ := s.Create(ctx, pets.Owner{Name: "carol"}, catalog.PetInput{Name: "C", Species: "Bird"})

	if err := s.Delete(ctx, c.ID, "alice"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := s.Delete(ctx, b.ID, "alice"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != a.ID || list[1].ID != c.ID {
		t.Fatalf("unexpected list order: %+v", list)
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	if err := Seed(ctx, repo); err != nil {
		t.Fatalf("seed: %v", err)
	}

	list, _ := repo.List(ctx)
	if len(list) != len(seedPets) {
		t.Fatalf("expected %d seeded pets, got %d", len(seedPets), len(list))
	}
	if list[0].ID != "seed-1" || list[0].OwnerName() != seedOwner {
		t.Fatalf("unexpected first seed: %+v", list[0].Pet)
	}
}

func TestAccounts_RegisterLoginVerify(t *testing.T) {
	ctx := context.Background()
	a := NewAccounts()

	if _, err := a.Register(ctx, auth.RegisterInput{Name: "alice", Email: "alice@x.io", Password: "short"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
	if _, err := a.Register(ctx, auth.RegisterInput{Name: "alice", Email: "Alice@X.io", Password: "password123"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := a.Register(ctx, auth.RegisterInput{Name: "ALICE", Email: "other@x.io", Password: "password123"}); !errors.Is(err, ErrProfileExists) {
		t.Fatalf("expected ErrProfileExists for same name, got %v", err)
	}

	if _, err := a.Login(ctx, auth.Credentials{Email: "alice@x.io", Password: "wrongpass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	p, err := a.Login(ctx, auth.Credentials{Email: " ALICE@x.io ", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if p.AccessToken == "" || p.Name != "alice" {
		t.Fatalf("unexpected profile: %+v", p)
	}

	claims, err := a.Verify(ctx, p.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserName != "alice" || claims.Email != "alice@x.io" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, err := a.Verify(ctx, "forged"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
