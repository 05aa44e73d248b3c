package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"campaigner/internal/config"
	"campaigner/internal/domain"
)

// ParseJSON decodes one JSON value from the request body into dest.
// The body is capped at config.MaxRequestBodyBytes. Decode failures come back
// as *domain.ValidationError so handlers can pass them to the error mapper.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodyBytes)

	decoder := json.NewDecoder(r.Body)
	// Unknown fields are accepted: clients post full draft objects

	if err := decoder.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return &domain.ValidationError{Message: "request body is required"}
		case errors.As(err, &maxErr):
			return &domain.ValidationError{Message: fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)}
		default:
			return &domain.ValidationError{Message: fmt.Sprintf("invalid JSON: %v", err)}
		}
	}

	if decoder.More() {
		return &domain.ValidationError{Message: "invalid JSON: trailing data after body"}
	}
	return nil
}
