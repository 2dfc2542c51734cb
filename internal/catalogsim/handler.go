package catalogsim

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pet-adoption-hub/internal/domain/pets"
	"pet-adoption-hub/internal/middleware"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/ports/auth"
	"pet-adoption-hub/internal/ports/catalog"
)

func RegisterRoutes(r chi.Router, svc *Service, accounts *Accounts, log logger.Logger) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc, log))
		pr.Get("/{petID}", getPetHandler(svc))

		pr.Post("/", createPetHandler(svc, log))
		pr.Put("/{petID}", updatePetHandler(svc, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))
	})

	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(accounts))
		ar.Post("/login", loginHandler(accounts))
	})
}

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorItem struct {
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

type errorEnvelope struct {
	Errors     []errorItem `json:"errors"`
	Status     string      `json:"status"`
	StatusCode int         `json:"statusCode"`
}

func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			log.Error("list pets", logger.Fields{"err": err})
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, dataEnvelope{Data: items})
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "No pet with such ID")
			return
		}
		writeJSON(w, http.StatusOK, dataEnvelope{Data: rec})
	}
}

func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var in catalog.PetInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		rec, err := svc.Create(r.Context(), pets.Owner{Name: claims.UserName, Email: claims.Email}, in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "Name and species are required", "name", "species")
				return
			}
			log.Error("create pet", logger.Fields{"err": err})
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, dataEnvelope{Data: rec})
	}
}

func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var in catalog.PetInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		rec, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), claims.UserName, in)
		if err != nil {
			writeServiceError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, dataEnvelope{Data: rec})
	}
}

func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), claims.UserName); err != nil {
			writeServiceError(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func registerHandler(accounts *Accounts) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in auth.RegisterInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := accounts.Register(r.Context(), in)
		switch {
		case errors.Is(err, ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "Name, email and a password of at least 8 characters are required")
			return
		case errors.Is(err, ErrProfileExists):
			writeError(w, http.StatusBadRequest, "Profile already exists")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, dataEnvelope{Data: p})
	}
}

func loginHandler(accounts *Accounts) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in auth.Credentials
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := accounts.Login(r.Context(), in)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		writeJSON(w, http.StatusOK, dataEnvelope{Data: p})
	}
}

func requireClaims(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || strings.TrimSpace(claims.UserName) == "" {
		writeError(w, http.StatusUnauthorized, "No authorization header provided")
		return auth.Claims{}, false
	}
	return claims, true
}

func writeServiceError(w http.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "No pet with such ID")
	case errors.Is(err, ErrForbidden):
		writeError(w, http.StatusForbidden, "You are not the owner of this pet")
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input")
	default:
		log.Error("catalog request", logger.Fields{"err": err})
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string, path ...string) {
	writeJSON(w, status, errorEnvelope{
		Errors:     []errorItem{{Message: msg, Path: path}},
		Status:     http.StatusText(status),
		StatusCode: status,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
