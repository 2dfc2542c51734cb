package catalogsim

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pet-adoption-hub/internal/middleware"
	"pet-adoption-hub/internal/platform/logger"
)

// APIKeyHeader es el header que exige el catálogo real en escrituras.
const APIKeyHeader = "X-Noroff-API-Key"

type Options struct {
	// APIKey vacía = no se exige.
	APIKey string
	Seed   bool
	Log    logger.Logger
}

// Server es un catálogo + auth en memoria con el mismo contrato que el servicio remoto.
type Server struct {
	Service  *Service
	Accounts *Accounts

	handler http.Handler
}

func New(ctx context.Context, opts Options) (*Server, error) {
	log := logger.OrNop(opts.Log).With(logger.Fields{"component": "catalogsim"})

	repo := NewMemoryRepo()
	if opts.Seed {
		if err := Seed(ctx, repo); err != nil {
			return nil, err
		}
	}

	s := &Server{
		Service:  NewService(repo),
		Accounts: NewAccounts(),
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequireAPIKey(APIKeyHeader, opts.APIKey, func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusUnauthorized, "No API key header was found")
	}))
	r.Use(middleware.AuthContext(s.Accounts))

	RegisterRoutes(r, s.Service, s.Accounts, log)

	s.handler = r
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.handler }
