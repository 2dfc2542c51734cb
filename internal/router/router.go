package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-adoption-hub/docs"
	"pet-adoption-hub/internal/api"
	"pet-adoption-hub/internal/app"
	"pet-adoption-hub/internal/middleware"
	"pet-adoption-hub/internal/platform/logger"
)

type Options struct {
	Service *app.Service
	Log     logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := logger.OrNop(opts.Log)
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	api.RegisterRoutes(r, opts.Service, log)

	return r
}
