package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"campaigner/internal/domain"
	"campaigner/internal/httputil"
)

// handleError converts domain errors to problem responses. Unknown errors
// become a generic 500 and are logged.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondProblem(w, r, httpErr.StatusCode(), httpErr.Error())
		return
	}

	logger.Error("unhandled error", "path", r.URL.Path, "request_id", httputil.GetRequestID(r), "error", err)
	httputil.RespondProblem(w, r, http.StatusInternalServerError, "internal server error")
}
