package app

import (
	"pet-adoption-hub/internal/domain/browse"
	"pet-adoption-hub/internal/domain/preferences"
)

// BrowseResult agrega a la página las especies disponibles para los filtros.
type BrowseResult struct {
	browse.Result
	Species []string `json:"species"`
}

func (s *Service) Browse() BrowseResult {
	return BrowseResult{
		Result:  s.view.Current(),
		Species: s.pets.Species(),
	}
}

// UpdateFilters aplica el patch y guarda la parte persistente en preferences.
func (s *Service) UpdateFilters(p browse.Patch) (BrowseResult, error) {
	if p.ViewMode != nil {
		m, ok := browse.ParseViewMode(string(*p.ViewMode))
		if !ok {
			return BrowseResult{}, ErrInvalidInput
		}
		p.ViewMode = &m
	}

	f := s.view.Apply(p)
	s.prefs.SetFilters(f.Excluded, f.ShowAdopted)
	return s.Browse(), nil
}

func (s *Service) Preferences() preferences.Prefs { return s.prefs.Get() }

func (s *Service) SetTheme(t string) (preferences.Theme, error) {
	theme, err := preferences.ParseTheme(t)
	if err != nil {
		return "", ErrInvalidInput
	}
	if err := s.prefs.SetTheme(theme); err != nil {
		return "", err
	}
	return theme, nil
}

func (s *Service) ToggleTheme() preferences.Theme { return s.prefs.ToggleTheme() }
