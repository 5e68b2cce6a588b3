// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/kingpotter-hr/full9-website/internal/model"
	"github.com/kingpotter-hr/full9-website/internal/service"
)

// ErrorBody is the payload of an error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// SuccessResponse acknowledges a mutation.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	ID      int64  `json:"id,omitempty"`
}

// LoginRequest represents the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Success   bool              `json:"success"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      service.AdminView `json:"user"`
}

// ToLoginResponse converts a service login result.
func ToLoginResponse(res *service.LoginResult) *LoginResponse {
	return &LoginResponse{
		Success:   true,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      res.User,
	}
}

// MeResponse wraps the identity of the calling admin.
type MeResponse struct {
	User service.AdminView `json:"user"`
}

// LogoutResponse reports whether the token was revoked server side.
type LogoutResponse struct {
	Success bool `json:"success"`
	Revoked bool `json:"revoked"`
}

// ChangePasswordRequest uses the camelCase field names the admin panel sends.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ContentRequest upserts one content item.
type ContentRequest struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Section string `json:"section"`
	Type    string `json:"type,omitempty"`
}

// ToInput converts the request to a service input.
func (r ContentRequest) ToInput() service.ContentInput {
	return service.ContentInput{
		Key:     r.Key,
		Value:   r.Value,
		Section: r.Section,
		Type:    model.ContentType(r.Type),
	}
}

// ProductRequest creates or replaces a product.
type ProductRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Icon        string   `json:"icon,omitempty"`
	Description string   `json:"description"`
	Features    []string `json:"features,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// ToInput converts the request to a service input.
func (r ProductRequest) ToInput() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Category:    model.ProductCategory(r.Category),
		Icon:        r.Icon,
		Description: r.Description,
		Features:    r.Features,
		ImageURL:    r.ImageURL,
		IsActive:    r.IsActive,
	}
}

// PortfolioRequest creates or replaces a portfolio item.
type PortfolioRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	Category     string `json:"category"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

// ToInput converts the request to a service input.
func (r PortfolioRequest) ToInput() service.PortfolioInput {
	return service.PortfolioInput{
		Title:        r.Title,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		Category:     r.Category,
		DisplayOrder: r.DisplayOrder,
		IsActive:     r.IsActive,
	}
}

// InquiryRequest is a public contact form submission.
type InquiryRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}

// ToInput converts the request to a service input.
func (r InquiryRequest) ToInput() service.InquiryInput {
	return service.InquiryInput{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Subject: r.Subject,
		Message: r.Message,
	}
}

// InquiryCreatedResponse acknowledges a submission with its public reference.
type InquiryCreatedResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Reference string `json:"reference"`
}

// InquiryStatusRequest moves an inquiry to a new status.
type InquiryStatusRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}
