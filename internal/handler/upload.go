package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kingpotter-hr/full9-website/internal/service"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temporary files.
const multipartMemory = 1 << 20

// UploadHandler accepts admin image uploads.
type UploadHandler struct {
	svc    *service.UploadService
	logger *slog.Logger
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(svc *service.UploadService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{svc: svc, logger: logger}
}

// Upload handles POST /api/uploads with a multipart "file" field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Enabled() {
		writeServiceError(w, h.logger, service.ErrStorageDisabled)
		return
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeServiceError(w, h.logger, service.ErrFileTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, "INVALID_MULTIPART", "Expected a multipart/form-data body")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "file is required")
		return
	}
	defer file.Close()

	res, err := h.svc.UploadImage(r.Context(), file, header.Size)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("image_uploaded", "key", res.Key, "size", res.Size, "content_type", res.ContentType)
	writeJSON(w, http.StatusCreated, res)
}
