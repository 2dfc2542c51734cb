package browse

import (
	"sort"
	"strconv"
	"strings"
)

// FilterState es el estado de la vista de navegación. Solo Excluded y
// ShowAdopted sobreviven a un reinicio (se guardan en preferences).
type FilterState struct {
	SearchTerm  string   `json:"searchTerm"`
	ViewMode    ViewMode `json:"viewMode"`
	Included    []string `json:"includedSpecies"`
	Excluded    []string `json:"excludedSpecies"`
	ShowAdopted bool     `json:"showAdopted"`
	CurrentPage int      `json:"currentPage"`
}

func DefaultFilterState() FilterState {
	return FilterState{
		ViewMode:    ViewAll,
		Included:    []string{},
		Excluded:    []string{},
		CurrentPage: 1,
	}
}

func (f FilterState) Criteria() Criteria {
	return Criteria{
		SearchTerm:  f.SearchTerm,
		ViewMode:    f.ViewMode,
		Included:    f.Included,
		Excluded:    f.Excluded,
		ShowAdopted: f.ShowAdopted,
	}
}

// Todos los setters de filtro vuelven a la página 1.

func (f *FilterState) SetSearchTerm(term string) {
	f.SearchTerm = term
	f.CurrentPage = 1
}

func (f *FilterState) SetViewMode(m ViewMode) {
	f.ViewMode = m
	f.CurrentPage = 1
}

func (f *FilterState) SetIncluded(list []string) {
	f.Included = normalizeSpecies(list)
	f.CurrentPage = 1
}

func (f *FilterState) ToggleIncluded(s string) {
	f.Included = toggle(f.Included, s)
	f.CurrentPage = 1
}

func (f *FilterState) SetExcluded(list []string) {
	f.Excluded = normalizeSpecies(list)
	f.CurrentPage = 1
}

func (f *FilterState) ToggleExcluded(s string) {
	f.Excluded = toggle(f.Excluded, s)
	f.CurrentPage = 1
}

func (f *FilterState) SetShowAdopted(v bool) {
	f.ShowAdopted = v
	f.CurrentPage = 1
}

// SetPage no valida contra TotalPages; solo evita páginas < 1.
func (f *FilterState) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	f.CurrentPage = n
}

// Patch es una actualización parcial; nil = no tocar.
type Patch struct {
	SearchTerm     *string   `json:"searchTerm,omitempty"`
	ViewMode       *ViewMode `json:"viewMode,omitempty"`
	Included       *[]string `json:"includedSpecies,omitempty"`
	Excluded       *[]string `json:"excludedSpecies,omitempty"`
	ToggleIncluded string    `json:"toggleIncluded,omitempty"`
	ToggleExcluded string    `json:"toggleExcluded,omitempty"`
	ShowAdopted    *bool     `json:"showAdopted,omitempty"`
	Page           *int      `json:"page,omitempty"`
}

// Apply aplica primero los filtros (que resetean la página) y después Page,
// así un patch puede cambiar filtros y saltar de página en un solo paso.
func (f *FilterState) Apply(p Patch) {
	if p.SearchTerm != nil {
		f.SetSearchTerm(*p.SearchTerm)
	}
	if p.ViewMode != nil {
		f.SetViewMode(*p.ViewMode)
	}
	if p.Included != nil {
		f.SetIncluded(*p.Included)
	}
	if p.Excluded != nil {
		f.SetExcluded(*p.Excluded)
	}
	if p.ToggleIncluded != "" {
		f.ToggleIncluded(p.ToggleIncluded)
	}
	if p.ToggleExcluded != "" {
		f.ToggleExcluded(p.ToggleExcluded)
	}
	if p.ShowAdopted != nil {
		f.SetShowAdopted(*p.ShowAdopted)
	}
	if p.Page != nil {
		f.SetPage(*p.Page)
	}
}

// key identifica la tupla de filtros para memoizar (sin la página).
func (f FilterState) key() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(f.SearchTerm))
	b.WriteByte(0)
	b.WriteString(string(f.ViewMode))
	b.WriteByte(0)
	writeKeyList(&b, f.Included)
	writeKeyList(&b, f.Excluded)
	b.WriteString(strconv.FormatBool(f.ShowAdopted))
	return b.String()
}

// writeKeyList escribe cada especie con su largo adelante, así un nombre con
// comas no choca con dos especies separadas.
func writeKeyList(b *strings.Builder, list []string) {
	items := sorted(list)
	b.WriteString(strconv.Itoa(len(items)))
	for _, s := range items {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(len(s)))
		b.WriteByte(':')
		b.WriteString(s)
	}
	b.WriteByte(0)
}

func (f FilterState) clone() FilterState {
	f.Included = append([]string{}, f.Included...)
	f.Excluded = append([]string{}, f.Excluded...)
	return f
}

func normalizeSpecies(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func toggle(list []string, s string) []string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return normalizeSpecies(list)
	}
	out := make([]string, 0, len(list)+1)
	found := false
	for _, cur := range normalizeSpecies(list) {
		if cur == s {
			found = true
			continue
		}
		out = append(out, cur)
	}
	if !found {
		out = append(out, s)
	}
	return out
}

func sorted(list []string) []string {
	out := append([]string(nil), list...)
	sort.Strings(out)
	return out
}
