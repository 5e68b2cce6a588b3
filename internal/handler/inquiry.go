package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kingpotter-hr/full9-website/internal/handler/dto"
	"github.com/kingpotter-hr/full9-website/internal/service"
)

// InquiryHandler handles contact form intake and admin triage.
type InquiryHandler struct {
	svc    *service.InquiryService
	logger *slog.Logger
}

// NewInquiryHandler creates a new InquiryHandler.
func NewInquiryHandler(svc *service.InquiryService, logger *slog.Logger) *InquiryHandler {
	return &InquiryHandler{svc: svc, logger: logger}
}

// Submit handles POST /api/inquiries.
func (h *InquiryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.InquiryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	q, err := h.svc.Submit(r.Context(), req.ToInput())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("inquiry_submitted", "inquiry_id", q.ID, "reference", q.Reference)
	writeJSON(w, http.StatusCreated, dto.InquiryCreatedResponse{
		Success:   true,
		Message:   "Inquiry submitted",
		Reference: q.Reference,
	})
}

// List handles GET /api/inquiries[?status=&limit=].
func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if l := query.Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be an integer")
			return
		}
		limit = parsed
	}

	list, err := h.svc.List(r.Context(), query.Get("status"), limit)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// UpdateStatus handles PATCH /api/inquiries/{id}/status.
func (h *InquiryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.InquiryStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, req.Status, req.AdminNotes); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("inquiry_status_updated", "inquiry_id", id, "status", req.Status)
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true, Message: "Status updated"})
}

// Delete handles DELETE /api/inquiries/{id}.
func (h *InquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("inquiry_deleted", "inquiry_id", id)
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true, Message: "Inquiry deleted"})
}
