package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsHandler_UpdateForms(t *testing.T) {
	f := newFixture(t)
	cred, token := f.credential(t)

	rec := serve(t, f.settings.Update, call{
		method: http.MethodPut, target: "/api/settings",
		body: `{"phone":"02-000-0000","line_id":"@full9","show_banner":true,"max_items":12}`,
		cred: cred, token: token,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(t, f.settings.Update, call{
		method: http.MethodPost, target: "/api/settings",
		body: `{"key":"phone","value":"02-111-1111"}`,
		cred: cred, token: token,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(t, f.settings.Get, call{method: http.MethodGet, target: "/api/settings"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{
		"phone":       "02-111-1111",
		"line_id":     "@full9",
		"show_banner": "true",
		"max_items":   "12",
	}, decodeBody[map[string]string](t, rec))
}

func TestSettingsHandler_UpdateEnvelopeStoresKeyAndValue(t *testing.T) {
	f := newFixture(t)
	cred, token := f.credential(t)

	rec := serve(t, f.settings.Update, call{
		method: http.MethodPut, target: "/api/settings",
		body: `{"settings":{"key":"k1","value":"v1"}}`,
		cred: cred, token: token,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(t, f.settings.Get, call{method: http.MethodGet, target: "/api/settings"})
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "k1", got["key"])
	assert.Equal(t, "v1", got["value"])
	assert.NotContains(t, got, "k1", "envelope must not be read as a single pair")
}

func TestSettingsHandler_UpdateRejected(t *testing.T) {
	f := newFixture(t)
	cred, token := f.credential(t)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"empty map", `{}`, "VALIDATION_ERROR"},
		{"nested value", `{"social":{"fb":"full9"}}`, "INVALID_JSON"},
		{"null value", `{"phone":null}`, "INVALID_JSON"},
		{"not an object", `["phone"]`, "INVALID_JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, f.settings.Update, call{method: http.MethodPut, target: "/api/settings", body: tt.body, cred: cred, token: token})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestSettingsFromBody(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   map[string]string
		wantOK bool
	}{
		{"single pair", `{"key":"phone","value":"02"}`, map[string]string{"phone": "02"}, true},
		{"pair with number value", `{"key":"max","value":5}`, map[string]string{"max": "5"}, true},
		{"key and other field is a map", `{"key":"phone","note":"x"}`, map[string]string{"key": "phone", "note": "x"}, true},
		{"literal key and value settings", `{"key":{"a":1},"value":"v"}`, nil, false},
		{"map", `{"a":"1","b":false}`, map[string]string{"a": "1", "b": "false"}, true},
		{"envelope stores key and value settings", `{"settings":{"key":"k1","value":"v1"}}`, map[string]string{"key": "k1", "value": "v1"}, true},
		{"envelope map", `{"settings":{"phone":"02","open":true}}`, map[string]string{"phone": "02", "open": "true"}, true},
		{"envelope must be an object", `{"settings":"x"}`, nil, false},
		{"envelope null", `{"settings":null}`, nil, false},
		{"envelope with nested object", `{"settings":{"a":{"b":1}}}`, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(tt.body), &raw))

			got, ok := settingsFromBody(raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
