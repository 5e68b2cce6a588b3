package handler

import (
	"log/slog"
	"net/http"

	"github.com/kingpotter-hr/full9-website/internal/handler/dto"
	"github.com/kingpotter-hr/full9-website/internal/service"
)

// CatalogHandler serves products and portfolio items.
type CatalogHandler struct {
	svc    *service.CatalogService
	logger *slog.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, logger: logger}
}

// ListProducts handles GET /api/products[?category=].
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{id}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateProduct handles POST /api/products.
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.svc.CreateProduct(r.Context(), req.ToInput())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("product_created", "product_id", p.ID, "category", p.Category)
	writeJSON(w, http.StatusCreated, dto.SuccessResponse{Success: true, Message: "Product created", ID: p.ID})
}

// UpdateProduct handles PUT /api/products/{id}.
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.svc.UpdateProduct(r.Context(), id, req.ToInput()); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("product_updated", "product_id", id)
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true, Message: "Product updated", ID: id})
}

// DeleteProduct handles DELETE /api/products/{id}.
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("product_deleted", "product_id", id)
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true, Message: "Product deleted"})
}

// ListPortfolio handles GET /api/portfolio (active items only).
func (h *CatalogHandler) ListPortfolio(w http.ResponseWriter, r *http.Request) {
	h.listPortfolio(w, r, false)
}

// ListAllPortfolio handles GET /api/portfolio/all, including hidden items.
func (h *CatalogHandler) ListAllPortfolio(w http.ResponseWriter, r *http.Request) {
	h.listPortfolio(w, r, true)
}

func (h *CatalogHandler) listPortfolio(w http.ResponseWriter, r *http.Request, includeInactive bool) {
	items, err := h.svc.ListPortfolio(r.Context(), includeInactive)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GetPortfolioItem handles GET /api/portfolio/{id}.
func (h *CatalogHandler) GetPortfolioItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.svc.GetPortfolioItem(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// CreatePortfolioItem handles POST /api/portfolio.
func (h *CatalogHandler) CreatePortfolioItem(w http.ResponseWriter, r *http.Request) {
	var req dto.PortfolioRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.svc.CreatePortfolioItem(r.Context(), req.ToInput())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("portfolio_created", "portfolio_id", item.ID)
	writeJSON(w, http.StatusCreated, dto.SuccessResponse{Success: true, Message: "Portfolio created", ID: item.ID})
}

// UpdatePortfolioItem handles PUT /api/portfolio/{id}.
func (h *CatalogHandler) UpdatePortfolioItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.PortfolioRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.svc.UpdatePortfolioItem(r.Context(), id, req.ToInput()); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("portfolio_updated", "portfolio_id", id)
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true, Message: "Portfolio updated", ID: id})
}

// DeletePortfolioItem handles DELETE /api/portfolio/{id}.
func (h *CatalogHandler) DeletePortfolioItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeletePortfolioItem(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("portfolio_deleted", "portfolio_id", id)
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true, Message: "Portfolio deleted"})
}
