package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-adoption-hub/internal/app"
	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/platform/logger"
)

type adoptionRequestBody struct {
	Message string `json:"message"`
}

// requestAdoptionHandler godoc
// @Summary Solicitar adopción
// @Description Crea una solicitud pending del usuario actual. No se puede pedir una mascota propia, ya adoptada, o con otra solicitud pending del mismo usuario.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body adoptionRequestBody false "Mensaje opcional para el dueño"
// @Success 201 {object} adoptions.Request
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse "mascota propia"
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse "ya adoptada o solicitud duplicada"
// @Router /pets/{petID}/adoption-requests [post]
func requestAdoptionHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body adoptionRequestBody
		// body opcional
		if err := decodeJSON(r, &body); err != nil && !errors.Is(err, io.EOF) {
			writeBadRequest(w, "invalid json")
			return
		}

		req, err := svc.RequestAdoption(r.Context(), chi.URLParam(r, "petID"), body.Message)
		if err != nil {
			writeErr(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, req)
	}
}

// petRequestsHandler godoc
// @Summary Solicitudes de una mascota
// @Description Solo el dueño.
// @Tags adoptions
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} adoptions.Request
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /pets/{petID}/adoption-requests [get]
func petRequestsHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.PetRequests(chi.URLParam(r, "petID"))
		if err != nil {
			writeErr(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// decideHandler godoc
// @Summary Aprobar o rechazar una solicitud
// @Description Solo el dueño. Aprobar marca la mascota como Adopted en el catálogo remoto y después en la cache local; si el remoto falla no cambia nada.
// @Tags adoptions
// @Param petID path string true "ID de la mascota"
// @Param requester path string true "Nombre del solicitante"
// @Success 204
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /pets/{petID}/adoption-requests/{requester}/approve [post]
// @Router /pets/{petID}/adoption-requests/{requester}/decline [post]
func decideHandler(svc *app.Service, log logger.Logger, status adoptions.Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.DecideRequest(r.Context(), chi.URLParam(r, "petID"), chi.URLParam(r, "requester"), status)
		if err != nil {
			writeErr(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// receivedRequestsHandler godoc
// @Summary Solicitudes recibidas
// @Tags adoptions
// @Produce json
// @Success 200 {array} adoptions.Request
// @Failure 401 {object} errorResponse
// @Router /me/adoption-requests/received [get]
func receivedRequestsHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ReceivedRequests()
		if err != nil {
			writeErr(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// sentRequestsHandler godoc
// @Summary Solicitudes enviadas
// @Tags adoptions
// @Produce json
// @Success 200 {array} adoptions.Request
// @Failure 401 {object} errorResponse
// @Router /me/adoption-requests/sent [get]
func sentRequestsHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.SentRequests()
		if err != nil {
			writeErr(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

type markSeenRequest struct {
	Role adoptions.Role `json:"role"`
}

type markSeenResponse struct {
	Updated int `json:"updated"`
}

// markSeenHandler godoc
// @Summary Marcar solicitudes como vistas
// @Description role=owner marca las pending recibidas; role=requester marca las resueltas enviadas. Idempotente.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param payload body markSeenRequest true "Rol"
// @Success 200 {object} markSeenResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /me/adoption-requests/seen [post]
func markSeenHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req markSeenRequest
		if err := decodeJSON(r, &req); err != nil {
			writeBadRequest(w, "invalid json")
			return
		}

		n, err := svc.MarkSeen(req.Role)
		if err != nil {
			writeErr(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, markSeenResponse{Updated: n})
	}
}

type alertsResponse struct {
	Count int `json:"count"`
}

// alertsHandler godoc
// @Summary Contador de alertas
// @Tags adoptions
// @Produce json
// @Success 200 {object} alertsResponse
// @Failure 401 {object} errorResponse
// @Router /me/alerts [get]
func alertsHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.AlertCount()
		if err != nil {
			writeErr(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, alertsResponse{Count: n})
	}
}
