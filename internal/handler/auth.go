package handler

import (
	"log/slog"
	"net/http"

	"github.com/kingpotter-hr/full9-website/internal/auth"
	"github.com/kingpotter-hr/full9-website/internal/handler/dto"
	"github.com/kingpotter-hr/full9-website/internal/service"
)

// AuthHandler handles admin login and account endpoints.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("admin_login", "admin_id", res.User.ID)
	writeJSON(w, http.StatusOK, dto.ToLoginResponse(res))
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cred := auth.MustCredentialFromContext(r.Context())

	user, err := h.svc.Me(cred)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MeResponse{User: user})
}

// ChangePassword handles POST /api/auth/change-password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "currentPassword and newPassword are required")
		return
	}

	cred := auth.MustCredentialFromContext(r.Context())
	if err := h.svc.ChangePassword(r.Context(), cred, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true, Message: "Password changed"})
}

// Logout handles POST /api/auth/logout. Without server-side revocation the
// client simply discards its token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cred := auth.MustCredentialFromContext(ctx)

	revoked, err := h.svc.Logout(ctx, auth.TokenFromContext(ctx), cred)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.LogoutResponse{Success: true, Revoked: revoked})
}
