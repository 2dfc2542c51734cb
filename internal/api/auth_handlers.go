package api

import (
	"net/http"

	"pet-adoption-hub/internal/app"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/ports/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type identityResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Autentica contra el servicio remoto y guarda la sesión local. Los errores del servicio (`errors[].message`) vuelven en `reasons` tal cual.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} identityResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 429 {object} errorResponse "demasiados intentos"
// @Failure 502 {object} errorResponse
// @Router /auth/login [post]
func loginHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeBadRequest(w, "invalid json")
			return
		}

		id, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeErr(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, identityResponse{Name: id.Name, Email: id.Email})
	}
}

// registerHandler godoc
// @Summary Registrar cuenta
// @Description Crea la cuenta en el servicio remoto. No inicia sesión.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body auth.RegisterInput true "Datos de la cuenta"
// @Success 201 {object} identityResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /auth/register [post]
func registerHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.RegisterInput
		if err := decodeJSON(r, &req); err != nil {
			writeBadRequest(w, "invalid json")
			return
		}

		p, err := svc.Register(r.Context(), req)
		if err != nil {
			writeErr(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, identityResponse{Name: p.Name, Email: p.Email})
	}
}

// logoutHandler godoc
// @Summary Cerrar sesión
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func logoutHandler(svc *app.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.Logout()
		w.WriteHeader(http.StatusNoContent)
	}
}

// meHandler godoc
// @Summary Usuario actual
// @Tags auth
// @Produce json
// @Success 200 {object} identityResponse
// @Failure 401 {object} errorResponse
// @Router /me [get]
func meHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := svc.Me()
		if err != nil {
			writeErr(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, identityResponse{Name: id.Name, Email: id.Email})
	}
}
