package middleware

import (
	"context"
	"net/http"

	"pantrypal-api/pkg/uid"
)

// contextKey is a private type so our context values cannot collide with
// keys set by other packages.
type contextKey string

// RequestIDKey is the context key under which the request ID is stored.
const RequestIDKey contextKey = "request_id"

// RequestID tags every request with an ID that the logging middleware
// includes on each access line. An X-Request-ID supplied by the client is
// honored so mobile-app traces line up with server logs; otherwise a new
// one is generated. The ID is echoed back in the response header either way.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uid.New()
		}

		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request ID stored by the RequestID middleware,
// or "" when called outside a request chain.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
