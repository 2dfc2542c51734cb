package catalogsim

import (
	"context"
	"fmt"
	"time"

	"pet-adoption-hub/internal/domain/pets"
)

const seedOwner = "shelter"

var seedPets = []pets.Pet{
	{Name: "Milo", Species: "Dog", Breed: "Beagle", Age: 3, Gender: "Male", Size: "Medium", Color: "Tricolor", Description: "Friendly and loves long walks.", Location: "Oslo"},
	{Name: "Luna", Species: "Cat", Breed: "Norwegian Forest", Age: 2, Gender: "Female", Size: "Medium", Color: "Grey", Description: "Calm lap cat.", Location: "Bergen"},
	{Name: "Kaa", Species: "Reptile", Breed: "Ball python", Age: 5, Gender: "Male", Size: "Large", Color: "Brown", Description: "Docile, eats every two weeks.", Location: "Trondheim"},
	{Name: "Rosie", Species: "Arachnid", Breed: "Chilean rose tarantula", Age: 4, Gender: "Female", Size: "Small", Color: "Pink", Description: "Low maintenance.", Location: "Oslo"},
	{Name: "Pip", Species: "Bird", Breed: "Budgerigar", Age: 1, Gender: "Male", Size: "Small", Color: "Green", Description: "Chatty and curious.", Location: "Stavanger"},
	{Name: "Bella", Species: "Dog", Breed: "Labrador", Age: 6, Gender: "Female", Size: "Large", Color: "Yellow", Description: "Great with kids.", Location: "Bergen"},
}

// Seed carga las mascotas de ejemplo a nombre de la cuenta "shelter".
func Seed(ctx context.Context, repo Repository) error {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, p := range seedPets {
		p.ID = fmt.Sprintf("seed-%d", i+1)
		p.AdoptionStatus = pets.StatusAvailable
		p.Owner = &pets.Owner{Name: seedOwner, Email: seedOwner + "@stud.noroff.no"}
		p.Image = pets.Image{URL: fmt.Sprintf("https://images.example.org/pets/%d.jpg", i+1), Alt: p.Name}

		at := base.Add(time.Duration(i) * time.Minute)
		if err := repo.Create(ctx, Record{Pet: p, Created: at, Updated: at}); err != nil {
			return fmt.Errorf("seed %s: %w", p.Name, err)
		}
	}
	return nil
}
