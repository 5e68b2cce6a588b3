package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recoverer recovers from handler panics, logs the stack and returns a
// JSON 500. http.ErrAbortHandler is re-panicked so net/http can abort.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("panic recovered",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":{"code":"INTERNAL_ERROR","message":"An internal error occurred"}}`))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
