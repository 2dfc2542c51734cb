package preferences

import (
	"errors"
	"strings"

	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/platform/state"
)

var ErrInvalidTheme = errors.New("invalid theme")

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", ErrInvalidTheme
	}
}

// Prefs es lo que sobrevive entre sesiones: tema y la parte persistente del
// filtro de navegación.
type Prefs struct {
	Theme           Theme    `json:"theme"`
	ExcludedSpecies []string `json:"excludedSpecies"`
	ShowAdopted     bool     `json:"showAdopted"`
}

func Default() Prefs {
	return Prefs{Theme: ThemeLight, ExcludedSpecies: []string{}}
}

const (
	actionSetTheme   state.Action = "preferences/set_theme"
	actionSetFilters state.Action = "preferences/set_filters"
)

type Store struct {
	store *state.Store[Prefs]
	log   logger.Logger
}

func New(initial Prefs, log logger.Logger, mws ...state.Middleware[Prefs]) *Store {
	if _, err := ParseTheme(string(initial.Theme)); err != nil {
		initial.Theme = ThemeLight
	}
	initial.ExcludedSpecies = append([]string{}, initial.ExcludedSpecies...)

	return &Store{
		store: state.New(initial, mws...),
		log:   logger.OrNop(log).With(logger.Fields{"component": "preferences"}),
	}
}

func (s *Store) Get() Prefs {
	p := s.store.Get()
	p.ExcludedSpecies = append([]string{}, p.ExcludedSpecies...)
	return p
}

func (s *Store) Theme() Theme { return s.store.Get().Theme }

func (s *Store) SetTheme(t Theme) error {
	t, err := ParseTheme(string(t))
	if err != nil {
		return err
	}
	s.store.Dispatch(actionSetTheme, func(cur Prefs) (Prefs, bool) {
		if cur.Theme == t {
			return cur, false
		}
		cur.Theme = t
		return cur, true
	})
	return nil
}

func (s *Store) ToggleTheme() Theme {
	var out Theme
	s.store.Dispatch(actionSetTheme, func(cur Prefs) (Prefs, bool) {
		if cur.Theme == ThemeDark {
			cur.Theme = ThemeLight
		} else {
			cur.Theme = ThemeDark
		}
		out = cur.Theme
		return cur, true
	})
	s.log.Debug("theme toggled", logger.Fields{"theme": string(out)})
	return out
}

// SetFilters guarda exclusiones y visibilidad de adoptadas. No-op si no cambió nada.
func (s *Store) SetFilters(excluded []string, showAdopted bool) {
	s.store.Dispatch(actionSetFilters, func(cur Prefs) (Prefs, bool) {
		if cur.ShowAdopted == showAdopted && equal(cur.ExcludedSpecies, excluded) {
			return cur, false
		}
		cur.ExcludedSpecies = append([]string{}, excluded...)
		cur.ShowAdopted = showAdopted
		return cur, true
	})
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
