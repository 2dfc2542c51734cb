package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-adoption-hub/internal/ports/auth"
)

// DebugUserHeader nombra al usuario cuando el catálogo simulado corre sin
// cuentas (verifier nil).
const DebugUserHeader = "X-Debug-User"

type ctxKey struct{}

// AuthContext resuelve el dueño de un access token emitido por el catálogo
// simulado y lo deja en el contexto. Un token ausente o inválido no corta el
// request: las rutas de escritura responden 401 por su cuenta.
func AuthContext(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := resolveClaims(r, verifier); ok {
				r = r.WithContext(WithClaims(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveClaims(r *http.Request, verifier auth.TokenVerifier) (auth.Claims, bool) {
	if verifier == nil {
		name := strings.TrimSpace(r.Header.Get(DebugUserHeader))
		return auth.Claims{UserName: name}, name != ""
	}

	token := BearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false
	}
	claims, err := verifier.Verify(r.Context(), token)
	if err != nil {
		return auth.Claims{}, false
	}
	return claims, true
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// ClaimsFromContext devuelve el usuario resuelto por AuthContext.
func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(auth.Claims)
	return c, ok
}

// BearerToken extrae el token de "Authorization: Bearer <token>"; el esquema
// no distingue mayúsculas.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
