package api

import (
	"net/http"

	"pet-adoption-hub/internal/app"
	"pet-adoption-hub/internal/platform/logger"
)

// preferencesHandler godoc
// @Summary Preferencias
// @Tags preferences
// @Produce json
// @Success 200 {object} preferences.Prefs
// @Router /preferences [get]
func preferencesHandler(svc *app.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Preferences())
	}
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type themeResponse struct {
	Theme string `json:"theme"`
}

// setThemeHandler godoc
// @Summary Cambiar tema
// @Tags preferences
// @Accept json
// @Produce json
// @Param payload body themeRequest true "light o dark"
// @Success 200 {object} themeResponse
// @Failure 400 {object} errorResponse
// @Router /preferences/theme [put]
func setThemeHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req themeRequest
		if err := decodeJSON(r, &req); err != nil {
			writeBadRequest(w, "invalid json")
			return
		}

		t, err := svc.SetTheme(req.Theme)
		if err != nil {
			writeErr(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, themeResponse{Theme: string(t)})
	}
}

// toggleThemeHandler godoc
// @Summary Alternar tema
// @Tags preferences
// @Produce json
// @Success 200 {object} themeResponse
// @Router /preferences/theme/toggle [post]
func toggleThemeHandler(svc *app.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, themeResponse{Theme: string(svc.ToggleTheme())})
	}
}
