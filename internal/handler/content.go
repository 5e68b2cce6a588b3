package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kingpotter-hr/full9-website/internal/handler/dto"
	"github.com/kingpotter-hr/full9-website/internal/service"
)

// ContentHandler serves editable page copy.
type ContentHandler struct {
	svc    *service.ContentService
	logger *slog.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(svc *service.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{svc: svc, logger: logger}
}

// List handles GET /api/content.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ListSection handles GET /api/content/{section}.
func (h *ContentHandler) ListSection(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListSection(r.Context(), chi.URLParam(r, "section"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/content/item/{key}.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Save handles POST /api/content (insert or update by key).
func (h *ContentHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.ContentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.svc.Save(r.Context(), req.ToInput())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("content_saved", "key", item.Key, "section", item.Section)
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true, Message: "Content saved", ID: item.ID})
}

// Delete handles DELETE /api/content/{key}.
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := h.svc.Delete(r.Context(), key); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("content_deleted", "key", key)
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true, Message: "Content deleted"})
}
