package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"

	"hrms.service/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// WithRequestLogger attaches a request-scoped logger carrying the trace ids
// and a request id. An incoming X-Request-ID is reused.
func WithRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := logger.EnrichContextWithLogger(r.Context())
		ctx = logger.WithFields(ctx, map[string]string{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithCORS allows browser calls from origin and answers preflight requests
// with 204. An empty origin disables CORS.
func WithCORS(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		return func(next http.Handler) http.Handler { return next }
	}
	return handlers.CORS(
		handlers.AllowedOrigins([]string{origin}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", requestIDHeader}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
		handlers.AllowCredentials(),
		handlers.OptionStatusCode(http.StatusNoContent),
	)
}
