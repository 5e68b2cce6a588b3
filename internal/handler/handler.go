// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kingpotter-hr/full9-website/internal/auth"
	"github.com/kingpotter-hr/full9-website/internal/handler/dto"
	"github.com/kingpotter-hr/full9-website/internal/service"
)

// Version is reported by the index endpoint.
const Version = "1.0.0"

// Handler serves the index and fallback routes.
type Handler struct {
	name string
}

// New creates a new Handler instance.
func New(name string) *Handler {
	return &Handler{name: name}
}

// Index describes the API.
// GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    h.name,
		"version": Version,
	})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: dto.ErrorBody{Code: code, Message: message}})
}

// decodeJSON reads a JSON body into dst and writes the error response itself
// when the body is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		writeError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large")
	case errors.Is(err, io.EOF):
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Request body is required")
	default:
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
	}
	return false
}

// pathID parses a positive integer URL parameter.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "ID must be a positive integer")
		return 0, false
	}
	return id, true
}

// writeServiceError maps service errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", verr.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found")
	case errors.Is(err, auth.ErrNoSubject):
		// Same response as the auth middleware for any unusable token.
		w.Header().Set("WWW-Authenticate", `Bearer realm="full9"`)
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, service.ErrWrongPassword):
		writeError(w, http.StatusBadRequest, "WRONG_PASSWORD", "Current password is incorrect")
	case errors.Is(err, service.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, "PASSWORD_TOO_SHORT", "New password must be at least 8 characters")
	case errors.Is(err, service.ErrStorageDisabled):
		writeError(w, http.StatusNotFound, "UPLOADS_DISABLED", "Uploads are not configured")
	case errors.Is(err, service.ErrUnsupportedMedia):
		writeError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Only PNG, JPEG, WebP and GIF images are accepted")
	case errors.Is(err, service.ErrFileTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File too large")
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
