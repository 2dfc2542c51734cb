package browse

import "pet-adoption-hub/internal/domain/pets"

const PageSize = 8

type Page struct {
	Items      []pets.Pet `json:"items"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
	Total      int        `json:"total"`
}

func TotalPages(total, size int) int {
	if size <= 0 {
		size = PageSize
	}
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate corta la página pedida (base 1). No hace clamp: una página fuera
// de rango devuelve Items vacío y el caller decide qué mostrar.
func Paginate(list []pets.Pet, page, size int) Page {
	if size <= 0 {
		size = PageSize
	}

	out := Page{
		Items:      []pets.Pet{},
		Page:       page,
		TotalPages: TotalPages(len(list), size),
		Total:      len(list),
	}
	if page < 1 || page > out.TotalPages {
		return out
	}

	start := (page - 1) * size
	end := start + size
	if end > len(list) {
		end = len(list)
	}
	out.Items = list[start:end:end]
	return out
}
