package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"campaigner/internal/httputil"
)

// Recovery turns a panicking handler into a 500 problem response.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("panic recovered",
					"error", rec,
					"path", r.URL.Path,
					"method", r.Method,
					"request_id", httputil.GetRequestID(r),
					"stack", string(debug.Stack()),
				)

				httputil.RespondProblem(w, r, http.StatusInternalServerError, "internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
