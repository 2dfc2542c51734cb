package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"pet-adoption-hub/internal/app"
	"pet-adoption-hub/internal/domain/pets"
	"pet-adoption-hub/internal/domain/preferences"
	"pet-adoption-hub/internal/domain/session"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/ports/catalog"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Reasons []string `json:"reasons,omitempty"`
}

// statusFor traduce errores del coordinador a HTTP. Los 4xx estructurados del
// servicio remoto se devuelven con su mismo status y mensajes.
func statusFor(err error) (int, []string) {
	var remote catalog.RemoteError
	switch {
	case errors.Is(err, app.ErrUnauthorized):
		return http.StatusUnauthorized, nil
	case errors.Is(err, app.ErrForbidden), errors.Is(err, app.ErrSelfAdoption):
		return http.StatusForbidden, nil
	case errors.Is(err, app.ErrPetNotFound), errors.Is(err, app.ErrRequestNotFound), errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, nil
	case errors.Is(err, app.ErrDuplicateRequest), errors.Is(err, app.ErrAlreadyAdopted):
		return http.StatusConflict, nil
	case errors.Is(err, app.ErrInvalidInput), errors.Is(err, session.ErrInvalidInput), errors.Is(err, preferences.ErrInvalidTheme):
		return http.StatusBadRequest, nil
	case errors.Is(err, app.ErrRateLimited):
		return http.StatusTooManyRequests, nil
	case errors.As(err, &remote):
		st := remote.HTTPStatus()
		if st >= 400 && st < 500 {
			return st, remote.Reasons()
		}
		return http.StatusBadGateway, remote.Reasons()
	case errors.Is(err, catalog.ErrUpstream), errors.Is(err, pets.ErrNoSource):
		return http.StatusBadGateway, nil
	default:
		return http.StatusInternalServerError, nil
	}
}

func writeErr(w http.ResponseWriter, log logger.Logger, err error) {
	status, reasons := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("unhandled error", logger.Fields{"err": err})
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg, Reasons: reasons})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
