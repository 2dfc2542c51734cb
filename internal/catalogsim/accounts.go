package catalogsim

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"pet-adoption-hub/internal/ports/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrProfileExists      = errors.New("profile already exists")
	ErrInvalidToken       = errors.New("invalid token")
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

type account struct {
	name  string
	email string
	salt  []byte
	hash  []byte
}

// Accounts guarda perfiles y tokens en memoria. Implementa auth.TokenVerifier.
type Accounts struct {
	mu       sync.RWMutex
	byEmail  map[string]account
	byName   map[string]string
	sessions map[string]auth.Claims
}

var _ auth.TokenVerifier = (*Accounts)(nil)

func NewAccounts() *Accounts {
	return &Accounts{
		byEmail:  make(map[string]account),
		byName:   make(map[string]string),
		sessions: make(map[string]auth.Claims),
	}
}

func (a *Accounts) Register(ctx context.Context, in auth.RegisterInput) (auth.Profile, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || len(in.Password) < 8 {
		return auth.Profile{}, ErrInvalidInput
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return auth.Profile{}, fmt.Errorf("read salt: %w", err)
	}
	hash := argon2.IDKey([]byte(in.Password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.byEmail[email]; ok {
		return auth.Profile{}, ErrProfileExists
	}
	if _, ok := a.byName[strings.ToLower(name)]; ok {
		return auth.Profile{}, ErrProfileExists
	}

	a.byEmail[email] = account{name: name, email: email, salt: salt, hash: hash}
	a.byName[strings.ToLower(name)] = email
	return auth.Profile{Name: name, Email: email}, nil
}

// Login verifica la contraseña y emite un token opaco nuevo.
func (a *Accounts) Login(ctx context.Context, in auth.Credentials) (auth.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	a.mu.RLock()
	acc, ok := a.byEmail[email]
	a.mu.RUnlock()
	if !ok {
		return auth.Profile{}, ErrInvalidCredentials
	}

	other := argon2.IDKey([]byte(in.Password), acc.salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	if subtle.ConstantTimeCompare(other, acc.hash) != 1 {
		return auth.Profile{}, ErrInvalidCredentials
	}

	token := base64.RawURLEncoding.EncodeToString([]byte(uuid.NewString()))

	a.mu.Lock()
	a.sessions[token] = auth.Claims{UserName: acc.name, Email: acc.email}
	a.mu.Unlock()

	return auth.Profile{Name: acc.name, Email: acc.email, AccessToken: token}, nil
}

func (a *Accounts) Verify(ctx context.Context, token string) (auth.Claims, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	c, ok := a.sessions[token]
	if !ok {
		return auth.Claims{}, ErrInvalidToken
	}
	return c, nil
}
