package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// RequireAPIKey exige header == key en métodos que escriben. Key vacía = no exige.
func RequireAPIKey(header, key string, onMissing http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if strings.TrimSpace(key) == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			got := r.Header.Get(header)
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				onMissing(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
