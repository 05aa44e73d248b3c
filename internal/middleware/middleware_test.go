package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"campaigner/internal/auth"
	"campaigner/internal/domain"
	"campaigner/internal/httputil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeVerifier struct{}

func (fakeVerifier) VerifyToken(token string) (*auth.Claims, error) {
	if token != "good" {
		return nil, domain.ErrUnauthorized
	}
	c := &auth.Claims{}
	c.Subject = "user-1"
	return c, nil
}

func (fakeVerifier) Close() error { return nil }

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, httputil.GetUserID(r))
	})
}

func TestAuth(t *testing.T) {
	h := Auth(fakeVerifier{}, discardLogger())(echoUser())

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"health exempt", http.MethodGet, "/health", "", http.StatusOK, ""},
		{"preflight exempt", http.MethodOptions, "/api/state", "", http.StatusOK, ""},
		{"missing token", http.MethodGet, "/api/state", "", http.StatusUnauthorized, ""},
		{"wrong scheme", http.MethodGet, "/api/state", "Basic good", http.StatusUnauthorized, ""},
		{"bad token", http.MethodGet, "/api/state", "Bearer bad", http.StatusUnauthorized, ""},
		{"good token", http.MethodGet, "/api/state", "Bearer good", http.StatusOK, "user-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestAuthDisabled(t *testing.T) {
	h := Auth(nil, discardLogger())(echoUser())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	var seen string
	h := RequestLogger(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = httputil.GetRequestID(r)
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if seen == "" || w.Header().Get("X-Request-ID") != seen {
		t.Errorf("request id = %q, header = %q", seen, w.Header().Get("X-Request-ID"))
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d", w.Code)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	r.Header.Set("X-Request-ID", "upstream-1")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if seen != "upstream-1" {
		t.Errorf("request id = %q, want upstream-1", seen)
	}
}
