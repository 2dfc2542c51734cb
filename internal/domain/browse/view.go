package browse

import (
	"sync"

	"pet-adoption-hub/internal/domain/pets"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/platform/state"
)

// Catalog es lo que la vista lee de la cache: snapshot + versión.
type Catalog interface {
	Snapshot() ([]pets.Pet, uint64)
}

const actionUpdateFilters state.Action = "browse/update_filters"

// View deriva la página visible a partir de la cache y los filtros.
// El resultado filtrado se memoiza por (versión de la cache, tupla de filtros):
// cambiar solo de página no vuelve a filtrar.
type View struct {
	catalog Catalog
	filters *state.Store[FilterState]
	log     logger.Logger

	mu           sync.Mutex
	memoVersion  uint64
	memoKey      string
	memoValid    bool
	memoFiltered []pets.Pet
	computations int
}

// Result es lo que ve la UI: la página y los filtros que la produjeron.
type Result struct {
	Page    Page        `json:"page"`
	Filters FilterState `json:"filters"`
}

func NewView(catalog Catalog, initial FilterState, log logger.Logger, mws ...state.Middleware[FilterState]) *View {
	if initial.CurrentPage < 1 {
		initial.CurrentPage = 1
	}
	if initial.ViewMode == "" {
		initial.ViewMode = ViewAll
	}
	initial.Included = normalizeSpecies(initial.Included)
	initial.Excluded = normalizeSpecies(initial.Excluded)

	return &View{
		catalog: catalog,
		filters: state.New(initial, mws...),
		log:     logger.OrNop(log).With(logger.Fields{"component": "browse_view"}),
	}
}

func (v *View) Filters() FilterState { return v.filters.Get().clone() }

// Update aplica fn sobre una copia de los filtros y la publica.
func (v *View) Update(fn func(*FilterState)) FilterState {
	var out FilterState
	v.filters.Dispatch(actionUpdateFilters, func(cur FilterState) (FilterState, bool) {
		next := cur.clone()
		fn(&next)
		out = next
		return next, true
	})
	return out.clone()
}

func (v *View) Apply(p Patch) FilterState {
	return v.Update(func(f *FilterState) { f.Apply(p) })
}

// Current devuelve la página actual. Filtra solo si cambió la cache o la
// tupla de filtros desde la última vez.
func (v *View) Current() Result {
	f := v.filters.Get()
	items, version := v.catalog.Snapshot()

	filtered := v.filtered(items, version, f)
	return Result{
		Page:    Paginate(filtered, f.CurrentPage, PageSize),
		Filters: f.clone(),
	}
}

// Computations cuenta cuántas veces se corrió FilterPets.
func (v *View) Computations() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.computations
}

// Subscribe notifica cada cambio de filtros.
func (v *View) Subscribe(fn func(FilterState)) (unsubscribe func()) {
	return v.filters.Subscribe(fn)
}

func (v *View) filtered(items []pets.Pet, version uint64, f FilterState) []pets.Pet {
	key := f.key()

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.memoValid && v.memoVersion == version && v.memoKey == key {
		return v.memoFiltered
	}

	out := FilterPets(items, f.Criteria())
	v.memoVersion = version
	v.memoKey = key
	v.memoFiltered = out
	v.memoValid = true
	v.computations++

	v.log.Debug("browse recomputed", logger.Fields{
		"catalog_version": version,
		"matches":         len(out),
	})
	return out
}
