package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingpotter-hr/full9-website/internal/auth"
	"github.com/kingpotter-hr/full9-website/internal/cache"
	"github.com/kingpotter-hr/full9-website/internal/handler"
	"github.com/kingpotter-hr/full9-website/internal/metrics"
	"github.com/kingpotter-hr/full9-website/internal/repository/sqlite"
	"github.com/kingpotter-hr/full9-website/internal/service"
	"github.com/kingpotter-hr/full9-website/internal/testutil"
)

const routerTestPassword = "admin123"

type testAPI struct {
	srv     *httptest.Server
	email   string
	metrics *metrics.InMemoryRecorder
	redis   *miniredis.Miniredis
}

// newTestAPI serves the full router over an in-memory store. Revocation and
// rate limiting are backed by miniredis.
func newTestAPI(t *testing.T, loginLimit RateLimit) *testAPI {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, store.EnsureSchema(ctx))

	hash, err := auth.HashPassword(routerTestPassword)
	require.NoError(t, err)
	admin := testutil.NewTestAdmin(t, hash)
	require.NoError(t, store.CreateAdmin(ctx, admin))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	c := cache.NewFromClient(client)

	issuer, err := auth.NewIssuer("router-test-secret-0123456789abcdef")
	require.NoError(t, err)

	rec := metrics.NewInMemory()
	router := NewRouter(Deps{
		Logger:         logger,
		Metrics:        rec,
		MetricsHandler: metrics.NewPrometheus().Handler(),
		Issuer:         issuer,
		Revocations:    c,
		Limiter:        c,
		LoginLimit:     loginLimit,
		InquiryLimit:   RateLimit{PerMinute: 60, Burst: 10},
		Auth:           service.NewAuthService(store, issuer, c, rec, logger),
		Content:        service.NewContentService(store, rec),
		Catalog:        service.NewCatalogService(store, rec),
		Inquiry:        service.NewInquiryService(store, nil, rec),
		Settings:       service.NewSettingsService(store, rec),
		Uploads:        service.NewUploadService(nil, 1<<20, rec),
		HealthCheckers: map[string]handler.HealthChecker{"database": store, "redis": c, "storage": nil},
		IsDevelopment:  true,
		CORSOrigins:    []string{"https://admin.full9.co.th"},
		MaxBodyBytes:   1 << 16,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testAPI{srv: srv, email: admin.Email, metrics: rec, redis: mr}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, a.srv.URL+path, r)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func (a *testAPI) login(t *testing.T) string {
	t.Helper()
	resp, data := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": a.email, "password": routerTestPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestRouter_PublicEndpoints(t *testing.T) {
	api := newTestAPI(t, RateLimit{PerMinute: 60, Burst: 10})

	tests := []struct {
		path string
		code int
	}{
		{"/", http.StatusOK},
		{"/healthz", http.StatusOK},
		{"/readyz", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/content", http.StatusOK},
		{"/api/content/hero", http.StatusOK},
		{"/api/products", http.StatusOK},
		{"/api/portfolio", http.StatusOK},
		{"/api/settings", http.StatusOK},
		{"/api/content/item/missing", http.StatusNotFound},
		{"/api/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, data := api.do(t, http.MethodGet, tt.path, "", nil)
			assert.Equal(t, tt.code, resp.StatusCode, string(data))
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
			assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
		})
	}
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t, RateLimit{PerMinute: 60, Burst: 10})

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/auth/change-password"},
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodPost, "/api/content"},
		{http.MethodDelete, "/api/content/hero_title"},
		{http.MethodPost, "/api/products"},
		{http.MethodPut, "/api/products/1"},
		{http.MethodDelete, "/api/products/1"},
		{http.MethodGet, "/api/portfolio/all"},
		{http.MethodPost, "/api/portfolio"},
		{http.MethodPut, "/api/portfolio/1"},
		{http.MethodDelete, "/api/portfolio/1"},
		{http.MethodGet, "/api/inquiries"},
		{http.MethodPatch, "/api/inquiries/1/status"},
		{http.MethodDelete, "/api/inquiries/1"},
		{http.MethodPut, "/api/settings"},
		{http.MethodPost, "/api/settings"},
		{http.MethodPost, "/api/uploads"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			resp, data := api.do(t, rt.method, rt.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, string(data))
			assert.JSONEq(t, `{"error":{"code":"UNAUTHORIZED","message":"Unauthorized"}}`, string(data))
		})
	}
	assert.Equal(t, uint64(len(routes)), api.metrics.Snapshot().AuthRejected["missing"])
}

func TestRouter_AdminFlow(t *testing.T) {
	api := newTestAPI(t, RateLimit{PerMinute: 60, Burst: 10})
	token := api.login(t)

	resp, data := api.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Contains(t, string(data), api.email)

	resp, data = api.do(t, http.MethodPost, "/api/content", token, map[string]string{
		"key": "hero_title", "value": "Full 9", "section": "hero",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	resp, data = api.do(t, http.MethodGet, "/api/content/hero", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"hero_title"`)

	resp, data = api.do(t, http.MethodDelete, "/api/content/hero_title", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	resp, data = api.do(t, http.MethodPost, "/api/products", token, map[string]any{
		"name": "Wall charger", "category": "charger", "description": "20W USB-C",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	resp, data = api.do(t, http.MethodPost, "/api/inquiries", "", map[string]string{
		"name": "Somchai", "email": "somchai@example.co.th", "subject": "Price", "message": "How much?",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	resp, data = api.do(t, http.MethodGet, "/api/inquiries", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"pending_count":1`)

	resp, data = api.do(t, http.MethodPost, "/api/settings", token, map[string]string{"key": "phone", "value": "02-000-0000"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	resp, _ = api.do(t, http.MethodPost, "/api/uploads", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "uploads are disabled without storage")
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	api := newTestAPI(t, RateLimit{PerMinute: 60, Burst: 10})
	token := api.login(t)

	resp, data := api.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.JSONEq(t, `{"success":true,"revoked":true}`, string(data))

	resp, _ = api.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, uint64(1), api.metrics.Snapshot().AuthRejected["revoked"])

	fresh := api.login(t)
	resp, _ = api.do(t, http.MethodGet, "/api/auth/me", fresh, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_LoginRateLimited(t *testing.T) {
	api := newTestAPI(t, RateLimit{PerMinute: 1, Burst: 2})
	body := map[string]string{"email": api.email, "password": "wrong"}

	for i := 0; i < 2; i++ {
		resp, _ := api.do(t, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp, data := api.do(t, http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode, string(data))
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Equal(t, uint64(1), api.metrics.Snapshot().RateLimited["login"])
}

func TestRouter_BodyTooLarge(t *testing.T) {
	api := newTestAPI(t, RateLimit{PerMinute: 60, Burst: 10})

	big := `{"name":"` + strings.Repeat("x", 1<<17) + `"}`
	resp, _ := api.do(t, http.MethodPost, "/api/inquiries", "", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestRouter_CORSPreflight(t *testing.T) {
	api := newTestAPI(t, RateLimit{PerMinute: 60, Burst: 10})

	req, err := http.NewRequest(http.MethodOptions, api.srv.URL+"/api/products", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://admin.full9.co.th")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := api.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://admin.full9.co.th", resp.Header.Get("Access-Control-Allow-Origin"))
}
