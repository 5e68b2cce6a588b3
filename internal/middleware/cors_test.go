package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		requestOrigin  string
		method         string
		preflight      bool
		wantStatus     int
		wantHeader     string
	}{
		{
			name:          "no origins configured blocks all",
			requestOrigin: "https://admin.full9.co.th",
			method:        http.MethodGet,
			wantStatus:    http.StatusOK,
		},
		{
			name:           "allowed origin gets header",
			allowedOrigins: []string{"https://admin.full9.co.th"},
			requestOrigin:  "https://admin.full9.co.th",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     "https://admin.full9.co.th",
		},
		{
			name:           "disallowed origin blocked on preflight",
			allowedOrigins: []string{"https://admin.full9.co.th"},
			requestOrigin:  "https://evil.example",
			method:         http.MethodOptions,
			preflight:      true,
			wantStatus:     http.StatusForbidden,
		},
		{
			name:           "preflight returns no content",
			allowedOrigins: []string{"https://admin.full9.co.th"},
			requestOrigin:  "https://admin.full9.co.th",
			method:         http.MethodOptions,
			preflight:      true,
			wantStatus:     http.StatusNoContent,
			wantHeader:     "https://admin.full9.co.th",
		},
		{
			name:           "case insensitive origin match",
			allowedOrigins: []string{"HTTPS://ADMIN.FULL9.CO.TH"},
			requestOrigin:  "https://admin.full9.co.th",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     "https://admin.full9.co.th",
		},
		{
			name:           "wildcard subdomain",
			allowedOrigins: []string{"*.full9.co.th"},
			requestOrigin:  "https://shop.full9.co.th",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     "https://shop.full9.co.th",
		},
		{
			name:           "wildcard does not match lookalike",
			allowedOrigins: []string{"*.full9.co.th"},
			requestOrigin:  "https://evilfull9.co.th",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
		},
		{
			name:           "wildcard does not match apex",
			allowedOrigins: []string{"*.full9.co.th"},
			requestOrigin:  "https://full9.co.th",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
		},
		{
			name:           "no origin header skips CORS",
			allowedOrigins: []string{"https://admin.full9.co.th"},
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCORSConfig()
			cfg.AllowedOrigins = tt.allowedOrigins

			handler := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, "/api/content", nil)
			if tt.requestOrigin != "" {
				req.Header.Set("Origin", tt.requestOrigin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantHeader {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantHeader)
			}
		})
	}
}

func TestCORSPreflightHeaders(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = []string{"https://admin.full9.co.th"}

	handler := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight must not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "https://admin.full9.co.th")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	for _, h := range []string{"Access-Control-Allow-Methods", "Access-Control-Allow-Headers", "Access-Control-Max-Age"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("%s not set on preflight", h)
		}
	}
	if got := rec.Header().Get("Vary"); got != "Origin" {
		t.Errorf("Vary = %q, want Origin", got)
	}
}
