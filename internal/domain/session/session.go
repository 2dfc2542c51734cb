package session

import (
	"errors"
	"strings"

	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/platform/state"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	actionLogin  state.Action = "auth/login"
	actionLogout state.Action = "auth/logout"
)

// Identity es el usuario logueado. Name es el handle que se usa para atribuir
// mascotas y solicitudes.
type Identity struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Credential string `json:"-"`
}

// State es la forma persistida bajo la clave "auth".
type State struct {
	User        *Identity `json:"user"`
	AccessToken string    `json:"accessToken"`
}

type Session struct {
	store *state.Store[State]
	log   logger.Logger
}

func New(initial State, log logger.Logger, mws ...state.Middleware[State]) *Session {
	if initial.User != nil {
		u := *initial.User
		initial.User = &u
	}
	return &Session{
		store: state.New(initial, mws...),
		log:   logger.OrNop(log).With(logger.Fields{"component": "session"}),
	}
}

// Login reemplaza la identidad completa. Solo valida que no haya campos vacíos.
func (s *Session) Login(name, email, credential string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || credential == "" {
		return ErrInvalidInput
	}

	next := State{
		User:        &Identity{Name: name, Email: email},
		AccessToken: credential,
	}
	s.store.Dispatch(actionLogin, func(State) (State, bool) { return next, true })

	s.log.Info("logged in", logger.Fields{"user": name})
	return nil
}

// Logout limpia identidad y credencial siempre, aunque no hubiera sesión.
func (s *Session) Logout() {
	s.store.Dispatch(actionLogout, func(State) (State, bool) { return State{}, true })
	s.log.Info("logged out", nil)
}

func (s *Session) IsLoggedIn() bool {
	return s.store.Get().AccessToken != ""
}

// Current devuelve la identidad con su credencial, si hay sesión.
func (s *Session) Current() (Identity, bool) {
	st := s.store.Get()
	if st.AccessToken == "" || st.User == nil {
		return Identity{}, false
	}
	id := *st.User
	id.Credential = st.AccessToken
	return id, true
}

func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	return s.store.Subscribe(fn)
}
