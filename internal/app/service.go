// Package app coordina los stores del cliente con el servicio remoto.
//
// Cada store (sesión, cache, ledger, preferencias) es independiente; los
// flujos que cruzan más de uno (aprobar una solicitud, refrescar el catálogo)
// se secuencian acá.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/domain/browse"
	"pet-adoption-hub/internal/domain/pets"
	"pet-adoption-hub/internal/domain/preferences"
	"pet-adoption-hub/internal/domain/session"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/ports/auth"
	"pet-adoption-hub/internal/ports/catalog"
)

type Deps struct {
	Catalog catalog.Catalog
	Auth    auth.Authenticator

	Session *session.Session
	Pets    *pets.Cache
	Ledger  *adoptions.Ledger
	View    *browse.View
	Prefs   *preferences.Store

	Log logger.Logger

	// LoginLimiter es opcional; por defecto 5 intentos por minuto.
	LoginLimiter *rate.Limiter
}

type Service struct {
	catalog catalog.Catalog
	auth    auth.Authenticator

	session *session.Session
	pets    *pets.Cache
	ledger  *adoptions.Ledger
	alerts  *adoptions.Counter
	view    *browse.View
	prefs   *preferences.Store

	log          logger.Logger
	tracer       trace.Tracer
	loginLimiter *rate.Limiter
}

func New(d Deps) *Service {
	lim := d.LoginLimiter
	if lim == nil {
		lim = rate.NewLimiter(rate.Every(1*time.Minute/5), 5)
	}

	return &Service{
		catalog:      d.Catalog,
		auth:         d.Auth,
		session:      d.Session,
		pets:         d.Pets,
		ledger:       d.Ledger,
		alerts:       adoptions.NewCounter(d.Ledger),
		view:         d.View,
		prefs:        d.Prefs,
		log:          logger.OrNop(d.Log).With(logger.Fields{"component": "app"}),
		tracer:       otel.Tracer("pet-adoption-hub/app"),
		loginLimiter: lim,
	}
}

// Login autentica contra el servicio remoto y guarda la sesión.
// Los errores estructurados del servicio vuelven tal cual.
func (s *Service) Login(ctx context.Context, email, password string) (session.Identity, error) {
	ctx, span := s.tracer.Start(ctx, "app.login")
	defer span.End()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return session.Identity{}, ErrInvalidInput
	}
	if !s.loginLimiter.Allow() {
		return session.Identity{}, ErrRateLimited
	}

	p, err := s.auth.Login(ctx, auth.Credentials{Email: email, Password: password})
	if err != nil {
		return session.Identity{}, err
	}
	if err := s.session.Login(p.Name, p.Email, p.AccessToken); err != nil {
		return session.Identity{}, fmt.Errorf("login response: %w", err)
	}

	id, _ := s.session.Current()
	return id, nil
}

// Register crea la cuenta remota. No inicia sesión.
func (s *Service) Register(ctx context.Context, in auth.RegisterInput) (auth.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "app.register")
	defer span.End()

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return auth.Profile{}, ErrInvalidInput
	}
	return s.auth.Register(ctx, in)
}

func (s *Service) Logout() {
	s.session.Logout()
}

// Me devuelve la identidad actual (sin credencial).
func (s *Service) Me() (session.Identity, error) {
	id, ok := s.session.Current()
	if !ok {
		return session.Identity{}, ErrUnauthorized
	}
	id.Credential = ""
	return id, nil
}

func (s *Service) requireUser() (session.Identity, error) {
	id, ok := s.session.Current()
	if !ok {
		return session.Identity{}, ErrUnauthorized
	}
	return id, nil
}
