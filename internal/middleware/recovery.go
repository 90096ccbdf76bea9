package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"pantrypal-api/pkg/apierror"
)

// Recovery turns a handler panic into a 500 in the standard error envelope
// instead of a dropped connection, logging the stack so the crash is
// diagnosable. Outermost middleware in the chain; see router.New.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC: %v\n%s", err, debug.Stack())

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write(apierror.InternalError("internal server error").ToJSON())
			}
		}()

		next.ServeHTTP(w, r)
	})
}
