package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/kingpotter-hr/full9-website/internal/auth"
	"github.com/kingpotter-hr/full9-website/internal/metrics"
	"github.com/kingpotter-hr/full9-website/internal/model"
	"github.com/kingpotter-hr/full9-website/internal/repository/sqlite"
	"github.com/kingpotter-hr/full9-website/internal/service"
	"github.com/kingpotter-hr/full9-website/internal/testutil"
)

const (
	testSecret   = "handler-test-secret-0123456789abcdef"
	testPassword = "admin123"
)

// fixture wires every handler over an isolated in-memory store.
type fixture struct {
	store    *sqlite.Store
	issuer   *auth.Issuer
	metrics  *metrics.InMemoryRecorder
	admin    *model.Admin
	auth     *AuthHandler
	content  *ContentHandler
	catalog  *CatalogHandler
	inquiry  *InquiryHandler
	settings *SettingsHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, store.EnsureSchema(ctx))

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	admin := testutil.NewTestAdmin(t, hash)
	require.NoError(t, store.CreateAdmin(ctx, admin))

	issuer, err := auth.NewIssuer(testSecret)
	require.NoError(t, err)

	rec := metrics.NewInMemory()
	logger := discardLogger()

	return &fixture{
		store:    store,
		issuer:   issuer,
		metrics:  rec,
		admin:    admin,
		auth:     NewAuthHandler(service.NewAuthService(store, issuer, nil, rec, logger), logger),
		content:  NewContentHandler(service.NewContentService(store, rec), logger),
		catalog:  NewCatalogHandler(service.NewCatalogService(store, rec), logger),
		inquiry:  NewInquiryHandler(service.NewInquiryService(store, nil, rec), logger),
		settings: NewSettingsHandler(service.NewSettingsService(store, rec), logger),
	}
}

// credential issues and verifies a token for the fixture admin.
func (f *fixture) credential(t *testing.T) (*auth.Credential, string) {
	t.Helper()
	token, err := f.issuer.Issue(f.admin.Claims())
	require.NoError(t, err)
	cred, err := f.issuer.Verify(token)
	require.NoError(t, err)
	return cred, token
}

// call is a request against a single handler func.
type call struct {
	method string
	target string
	body   any
	params map[string]string
	cred   *auth.Credential
	token  string
}

func serve(t *testing.T, fn http.HandlerFunc, c call) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	switch b := c.body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(c.method, c.target, body)
	if len(c.params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range c.params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(contextWithRoute(req, rctx))
	}
	if c.cred != nil {
		ctx := auth.ContextWithCredential(req.Context(), c.cred)
		ctx = auth.ContextWithToken(ctx, c.token)
		req = req.WithContext(ctx)
	}

	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func contextWithRoute(req *http.Request, rctx *chi.Context) context.Context {
	return context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}
