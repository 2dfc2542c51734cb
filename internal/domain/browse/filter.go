package browse

import (
	"strconv"
	"strings"

	"pet-adoption-hub/internal/domain/pets"
	"pet-adoption-hub/internal/domain/species"
)

type ViewMode string

const (
	ViewAll     ViewMode = "all"
	ViewInclude ViewMode = "include"
	ViewExclude ViewMode = "exclude"
)

func ParseViewMode(s string) (ViewMode, bool) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case ViewAll:
		return ViewAll, true
	case ViewInclude:
		return ViewInclude, true
	case ViewExclude:
		return ViewExclude, true
	default:
		return "", false
	}
}

// Criteria son las entradas del filtro (sin la página).
type Criteria struct {
	SearchTerm  string
	ViewMode    ViewMode
	Included    []string
	Excluded    []string
	ShowAdopted bool
}

// FilterPets aplica, en AND:
//  1. visibilidad de adoptadas
//  2. búsqueda por substring sobre el haystack
//  3. inclusión por especie (solo en modo include)
//  4. exclusión con alias, en cualquier modo
//
// No modifica la entrada y preserva el orden.
func FilterPets(list []pets.Pet, c Criteria) []pets.Pet {
	term := strings.ToLower(c.SearchTerm)

	included := make(map[string]struct{}, len(c.Included))
	for _, s := range c.Included {
		included[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	excluded := species.Expand(c.Excluded)

	out := make([]pets.Pet, 0, len(list))
	for _, p := range list {
		if !c.ShowAdopted && p.IsAdopted() {
			continue
		}
		if term != "" && !strings.Contains(Haystack(p), term) {
			continue
		}
		if c.ViewMode == ViewInclude {
			if _, ok := included[strings.ToLower(p.Species)]; !ok {
				continue
			}
		}
		if isExcluded(p, excluded) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Haystack une los campos buscables en minúsculas, separados por espacio,
// omitiendo los vacíos.
func Haystack(p pets.Pet) string {
	fields := []string{
		p.Name,
		p.Species,
		p.Breed,
		strconv.Itoa(p.Age),
		p.Gender,
		p.Size,
		p.Color,
		p.Description,
		p.Location,
		p.OwnerName(),
	}

	parts := fields[:0]
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func isExcluded(p pets.Pet, synonyms map[string]struct{}) bool {
	if len(synonyms) == 0 {
		return false
	}
	sp := strings.ToLower(p.Species)
	breed := strings.ToLower(p.Breed)
	desc := strings.ToLower(p.Description)

	for s := range synonyms {
		if strings.Contains(sp, s) || strings.Contains(breed, s) || strings.Contains(desc, s) {
			return true
		}
	}
	return false
}
