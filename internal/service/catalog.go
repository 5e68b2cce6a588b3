package service

import (
	"context"
	"strings"

	"github.com/kingpotter-hr/full9-website/internal/metrics"
	"github.com/kingpotter-hr/full9-website/internal/model"
	"github.com/kingpotter-hr/full9-website/internal/repository"
)

const (
	maxNameLength        = 200
	maxDescriptionLength = 5000
	maxIconLength        = 100
	maxURLLength         = 2048
	maxCategoryLength    = 100
	maxFeatures          = 30
	maxFeatureLength     = 200
)

// ProductInput is a create or update request for a product.
type ProductInput struct {
	Name        string
	Category    model.ProductCategory
	Icon        string
	Description string
	Features    []string
	ImageURL    *string
	IsActive    *bool
}

// PortfolioInput is a create or update request for a portfolio item.
type PortfolioInput struct {
	Title        string
	Description  string
	ImageURL     string
	Category     string
	DisplayOrder int
	IsActive     *bool
}

// CatalogService manages products and portfolio items.
type CatalogService struct {
	store   repository.CatalogStore
	metrics metrics.Recorder
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(store repository.CatalogStore, recorder metrics.Recorder) *CatalogService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CatalogService{store: store, metrics: recorder}
}

// ListProducts returns products newest first, optionally for one category.
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]model.Product, error) {
	cat := model.ProductCategory(strings.TrimSpace(category))
	if cat != "" && !cat.IsValid() {
		return nil, invalid("category", "must be one of case, charger, accessories")
	}
	products, err := s.store.ListProducts(ctx, cat)
	if err != nil {
		return nil, storeErr("list products", err)
	}
	return products, nil
}

// GetProduct returns a product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, storeErr("get product", err)
	}
	return p, nil
}

// CreateProduct validates and stores a new product. New products are active
// unless the input says otherwise.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	p := &model.Product{IsActive: true}
	if err := applyProduct(p, in); err != nil {
		return nil, err
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, storeErr("create product", err)
	}
	s.metrics.IncContentChange("product", "create")
	return p, nil
}

// UpdateProduct replaces the editable fields of an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*model.Product, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, storeErr("get product", err)
	}
	if err := applyProduct(p, in); err != nil {
		return nil, err
	}
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return nil, storeErr("update product", err)
	}
	s.metrics.IncContentChange("product", "update")
	return p, nil
}

// DeleteProduct removes a product.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return storeErr("delete product", err)
	}
	s.metrics.IncContentChange("product", "delete")
	return nil
}

func applyProduct(p *model.Product, in ProductInput) error {
	name, err := required("name", in.Name, maxNameLength)
	if err != nil {
		return err
	}
	desc, err := required("description", in.Description, maxDescriptionLength)
	if err != nil {
		return err
	}
	if !in.Category.IsValid() {
		return invalid("category", "must be one of case, charger, accessories")
	}

	icon := strings.TrimSpace(in.Icon)
	if icon == "" {
		icon = model.DefaultProductIcon
	}
	if len(icon) > maxIconLength {
		return invalid("icon", "is too long")
	}

	if len(in.Features) > maxFeatures {
		return invalid("features", "has too many entries")
	}
	features := make([]string, 0, len(in.Features))
	for _, f := range in.Features {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if len(f) > maxFeatureLength {
			return invalid("features", "entry is too long")
		}
		features = append(features, f)
	}

	imageURL, err := optional("image_url", in.ImageURL, maxURLLength)
	if err != nil {
		return err
	}

	p.Name = name
	p.Category = in.Category
	p.Icon = icon
	p.Description = desc
	p.Features = features
	p.ImageURL = imageURL
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return nil
}

// ListPortfolio returns portfolio items by display order. Inactive items are
// included only when includeInactive is set.
func (s *CatalogService) ListPortfolio(ctx context.Context, includeInactive bool) ([]model.PortfolioItem, error) {
	items, err := s.store.ListPortfolio(ctx, includeInactive)
	if err != nil {
		return nil, storeErr("list portfolio", err)
	}
	return items, nil
}

// GetPortfolioItem returns a portfolio item by id.
func (s *CatalogService) GetPortfolioItem(ctx context.Context, id int64) (*model.PortfolioItem, error) {
	item, err := s.store.GetPortfolioItem(ctx, id)
	if err != nil {
		return nil, storeErr("get portfolio item", err)
	}
	return item, nil
}

// CreatePortfolioItem validates and stores a new portfolio item.
func (s *CatalogService) CreatePortfolioItem(ctx context.Context, in PortfolioInput) (*model.PortfolioItem, error) {
	item := &model.PortfolioItem{IsActive: true}
	if err := applyPortfolio(item, in); err != nil {
		return nil, err
	}
	if err := s.store.CreatePortfolioItem(ctx, item); err != nil {
		return nil, storeErr("create portfolio item", err)
	}
	s.metrics.IncContentChange("portfolio", "create")
	return item, nil
}

// UpdatePortfolioItem replaces the editable fields of a portfolio item.
func (s *CatalogService) UpdatePortfolioItem(ctx context.Context, id int64, in PortfolioInput) (*model.PortfolioItem, error) {
	item, err := s.store.GetPortfolioItem(ctx, id)
	if err != nil {
		return nil, storeErr("get portfolio item", err)
	}
	if err := applyPortfolio(item, in); err != nil {
		return nil, err
	}
	if err := s.store.UpdatePortfolioItem(ctx, item); err != nil {
		return nil, storeErr("update portfolio item", err)
	}
	s.metrics.IncContentChange("portfolio", "update")
	return item, nil
}

// DeletePortfolioItem removes a portfolio item.
func (s *CatalogService) DeletePortfolioItem(ctx context.Context, id int64) error {
	if err := s.store.DeletePortfolioItem(ctx, id); err != nil {
		return storeErr("delete portfolio item", err)
	}
	s.metrics.IncContentChange("portfolio", "delete")
	return nil
}

func applyPortfolio(item *model.PortfolioItem, in PortfolioInput) error {
	title, err := required("title", in.Title, maxNameLength)
	if err != nil {
		return err
	}
	imageURL, err := required("image_url", in.ImageURL, maxURLLength)
	if err != nil {
		return err
	}
	desc := strings.TrimSpace(in.Description)
	if len(desc) > maxDescriptionLength {
		return invalid("description", "is too long")
	}
	category := strings.TrimSpace(in.Category)
	if len(category) > maxCategoryLength {
		return invalid("category", "is too long")
	}
	if in.DisplayOrder < 0 {
		return invalid("display_order", "must not be negative")
	}

	item.Title = title
	item.Description = desc
	item.ImageURL = imageURL
	item.Category = category
	item.DisplayOrder = in.DisplayOrder
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
	return nil
}
