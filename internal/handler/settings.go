package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kingpotter-hr/full9-website/internal/handler/dto"
	"github.com/kingpotter-hr/full9-website/internal/service"
)

// SettingsHandler serves site-wide settings.
type SettingsHandler struct {
	svc    *service.SettingsService
	logger *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(svc *service.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, logger: logger}
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.All(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// Update handles PUT and POST /api/settings. The body is one of:
//
//	{"settings": {"phone": "02", ...}}  bulk update, always read as a map
//	{"key": "phone", "value": "02"}     a single pair
//	{"phone": "02", ...}                bulk update
//
// A body with exactly the two keys "key" and "value" is a single pair, so
// settings named "key" and "value" must be sent in the "settings" envelope.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	if !decodeJSON(w, r, &raw) {
		return
	}

	settings, ok := settingsFromBody(raw)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Setting values must be strings, numbers or booleans")
		return
	}

	if err := h.svc.Update(r.Context(), settings); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("settings_updated", "count", len(settings))
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true, Message: "Settings updated"})
}

// settingsEnvelope wraps an explicit bulk update.
const settingsEnvelope = "settings"

// settingsFromBody flattens a decoded body into string values. Numbers and
// booleans keep their JSON text; objects, arrays and null are rejected.
func settingsFromBody(raw map[string]json.RawMessage) (map[string]string, bool) {
	if env, ok := raw[settingsEnvelope]; ok && len(raw) == 1 {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(env, &inner); err != nil || inner == nil {
			return nil, false
		}
		return scalarMap(inner)
	}

	_, hasKey := raw["key"]
	_, hasValue := raw["value"]
	if len(raw) == 2 && hasKey && hasValue {
		if k, ok := scalarString(raw["key"]); ok {
			if v, ok := scalarString(raw["value"]); ok {
				return map[string]string{k: v}, true
			}
		}
	}

	return scalarMap(raw)
}

func scalarMap(raw map[string]json.RawMessage) (map[string]string, bool) {
	out := make(map[string]string, len(raw))
	for k, msg := range raw {
		v, ok := scalarString(msg)
		if !ok {
			return nil, false
		}
		out[k] = v
	}
	return out, true
}

func scalarString(msg json.RawMessage) (string, bool) {
	if len(msg) == 0 || string(msg) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s, true
	}
	var v any
	if err := json.Unmarshal(msg, &v); err != nil {
		return "", false
	}
	switch v.(type) {
	case float64, bool:
		return string(msg), true
	default:
		return "", false
	}
}
