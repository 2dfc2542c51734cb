package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"pet-adoption-hub/internal/platform/logger"
)

// RequestLog deja una línea por request con status y duración.
// Va después de chimw.RequestID para poder loguear el id.
func RequestLog(log logger.Logger) func(http.Handler) http.Handler {
	log = logger.OrNop(log)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			fields := logger.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if id := chimw.GetReqID(r.Context()); id != "" {
				fields["request_id"] = id
			}

			switch {
			case ww.Status() >= 500:
				log.Error("http request", fields)
			case ww.Status() >= 400:
				log.Warn("http request", fields)
			default:
				log.Debug("http request", fields)
			}
		})
	}
}
