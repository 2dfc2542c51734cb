// Package api expone el motor por HTTP (backend-for-frontend local).
package api

import (
	"github.com/go-chi/chi/v5"

	"pet-adoption-hub/internal/app"
	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/platform/logger"
)

func RegisterRoutes(r chi.Router, svc *app.Service, log logger.Logger) {
	log = logger.OrNop(log).With(logger.Fields{"component": "api"})

	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", loginHandler(svc, log))
		ar.Post("/register", registerHandler(svc, log))
		ar.Post("/logout", logoutHandler(svc))
	})

	r.Get("/me", meHandler(svc, log))
	r.Get("/me/pets", myPetsHandler(svc, log))
	r.Get("/me/alerts", alertsHandler(svc, log))
	r.Get("/me/adoption-requests/received", receivedRequestsHandler(svc, log))
	r.Get("/me/adoption-requests/sent", sentRequestsHandler(svc, log))
	r.Post("/me/adoption-requests/seen", markSeenHandler(svc, log))

	r.Patch("/browse", updateFiltersHandler(svc, log))

	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", browseHandler(svc))
		pr.Post("/", createPetHandler(svc, log))
		pr.Post("/refresh", refreshHandler(svc, log))

		pr.Get("/{petID}", petDetailHandler(svc, log))
		pr.Put("/{petID}", updatePetHandler(svc, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))

		pr.Post("/{petID}/adoption-requests", requestAdoptionHandler(svc, log))
		pr.Get("/{petID}/adoption-requests", petRequestsHandler(svc, log))
		pr.Post("/{petID}/adoption-requests/{requester}/approve", decideHandler(svc, log, adoptions.StatusApproved))
		pr.Post("/{petID}/adoption-requests/{requester}/decline", decideHandler(svc, log, adoptions.StatusDeclined))
	})

	r.Route("/preferences", func(pr chi.Router) {
		pr.Get("/", preferencesHandler(svc))
		pr.Put("/theme", setThemeHandler(svc, log))
		pr.Post("/theme/toggle", toggleThemeHandler(svc))
	})
}
