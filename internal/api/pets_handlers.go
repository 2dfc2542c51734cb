package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-adoption-hub/internal/app"
	"pet-adoption-hub/internal/domain/browse"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/ports/catalog"
)

// browseHandler godoc
// @Summary Página actual del catálogo
// @Description Devuelve la página filtrada según los filtros vigentes (8 por página) y las especies disponibles.
// @Tags pets
// @Produce json
// @Success 200 {object} app.BrowseResult
// @Router /pets [get]
func browseHandler(svc *app.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Browse())
	}
}

// updateFiltersHandler godoc
// @Summary Cambiar filtros de navegación
// @Description Patch parcial: campos ausentes no se tocan. Cualquier cambio de filtro vuelve a la página 1; `page` se aplica después.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body browse.Patch true "Cambios de filtro"
// @Success 200 {object} app.BrowseResult
// @Failure 400 {object} errorResponse
// @Router /browse [patch]
func updateFiltersHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p browse.Patch
		if err := decodeJSON(r, &p); err != nil {
			writeBadRequest(w, "invalid json")
			return
		}

		res, err := svc.UpdateFilters(p)
		if err != nil {
			writeErr(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

type refreshResponse struct {
	Count int `json:"count"`
}

// refreshHandler godoc
// @Summary Refrescar catálogo
// @Description Trae el catálogo remoto completo. Si falla, la cache local queda intacta.
// @Tags pets
// @Produce json
// @Success 200 {object} refreshResponse
// @Failure 502 {object} errorResponse
// @Router /pets/refresh [post]
func refreshHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.RefreshCatalog(r.Context())
		if err != nil {
			writeErr(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, refreshResponse{Count: n})
	}
}

// petDetailHandler godoc
// @Summary Detalle de mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} app.Detail
// @Failure 404 {object} errorResponse
// @Router /pets/{petID} [get]
func petDetailHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.PetDetail(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeErr(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}

// myPetsHandler godoc
// @Summary Mis mascotas publicadas
// @Tags pets
// @Produce json
// @Success 200 {array} pets.Pet
// @Failure 401 {object} errorResponse
// @Router /me/pets [get]
func myPetsHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.MyPets()
		if err != nil {
			writeErr(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// createPetHandler godoc
// @Summary Publicar mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body catalog.PetInput true "Datos de la mascota; name y species obligatorios"
// @Success 201 {object} pets.Pet
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /pets [post]
func createPetHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in catalog.PetInput
		if err := decodeJSON(r, &in); err != nil {
			writeBadRequest(w, "invalid json")
			return
		}

		p, err := svc.CreatePet(r.Context(), in)
		if err != nil {
			writeErr(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

// updatePetHandler godoc
// @Summary Editar mascota
// @Description Solo el dueño. Los campos vacíos no se tocan.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body catalog.PetInput true "Campos a cambiar"
// @Success 200 {object} pets.Pet
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /pets/{petID} [put]
func updatePetHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in catalog.PetInput
		if err := decodeJSON(r, &in); err != nil {
			writeBadRequest(w, "invalid json")
			return
		}

		p, err := svc.UpdatePet(r.Context(), chi.URLParam(r, "petID"), in)
		if err != nil {
			writeErr(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Tags pets
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *app.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeletePet(r.Context(), chi.URLParam(r, "petID")); err != nil {
			writeErr(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
