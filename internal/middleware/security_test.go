package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecurity(t *testing.T) {
	tests := []struct {
		name        string
		isDev       bool
		checkHeader string
		wantValue   string
	}{
		{"X-Content-Type-Options", false, "X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", false, "X-Frame-Options", "DENY"},
		{"Referrer-Policy", false, "Referrer-Policy", "strict-origin-when-cross-origin"},
		{"CSP", false, "Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
		{"HSTS in production", false, "Strict-Transport-Security", "max-age=31536000; includeSubDomains"},
		{"no HSTS in development", true, "Strict-Transport-Security", ""},
		{"Cache-Control", false, "Cache-Control", "no-store"},
		{"COOP", false, "Cross-Origin-Opener-Policy", "same-origin"},
		{"CORP", false, "Cross-Origin-Resource-Policy", "same-site"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Security(SecurityConfig{IsDevelopment: tt.isDev})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if got := rec.Header().Get(tt.checkHeader); got != tt.wantValue {
				t.Errorf("header %s = %q, want %q", tt.checkHeader, got, tt.wantValue)
			}
		})
	}
}

func TestSecurity_HandlerMayOverrideCacheControl(t *testing.T) {
	handler := Security(SecurityConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=60")
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=60" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestMaxBodySize(t *testing.T) {
	tests := []struct {
		name          string
		maxBytes      int64
		contentLength int64
		body          string
		wantStatus    int
	}{
		{"small body allowed", 1024, 10, "small body", http.StatusOK},
		{"declared length exceeds limit", 10, 100, "this is a much longer body that exceeds the limit", http.StatusRequestEntityTooLarge},
		{"chunked body exceeds limit", 10, -1, "this is a much longer body that exceeds the limit", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := MaxBodySize(tt.maxBytes)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, err := io.Copy(io.Discard, r.Body); err != nil {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.ContentLength = tt.contentLength
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
