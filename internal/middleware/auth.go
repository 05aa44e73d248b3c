package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"campaigner/internal/auth"
	"campaigner/internal/httputil"
)

// publicPaths skip bearer auth
var publicPaths = map[string]bool{
	"/health": true,
}

// Auth requires a valid bearer token on every route except publicPaths and
// CORS pre-flights. A nil verifier disables auth.
func Auth(verifier auth.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if verifier == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				httputil.RespondProblem(w, r, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("unauthorized request", "path", r.URL.Path, "request_id", httputil.GetRequestID(r))
				httputil.RespondProblem(w, r, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.UserID()))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
