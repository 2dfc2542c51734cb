package auth

import "context"

// TokenVerifier verifica un token y devuelve claims o error.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Authenticator es el lado cliente del servicio de auth remoto.
type Authenticator interface {
	Login(ctx context.Context, in Credentials) (Profile, error)
	Register(ctx context.Context, in RegisterInput) (Profile, error)
}
