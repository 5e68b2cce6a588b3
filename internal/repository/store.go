package repository

import (
	"context"
	"errors"

	"github.com/kingpotter-hr/full9-website/internal/model"
)

// Common errors shared by every Store implementation.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// Default and maximum page size for inquiry listings.
const (
	DefaultInquiryLimit = 100
	MaxInquiryLimit     = 500
)

// AdminStore persists admin accounts.
type AdminStore interface {
	GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
	GetAdminByID(ctx context.Context, id int64) (*model.Admin, error)
	CreateAdmin(ctx context.Context, admin *model.Admin) error
	UpdateAdminPassword(ctx context.Context, id int64, passwordHash string) error
}

// ContentStore persists keyed page content.
type ContentStore interface {
	ListContent(ctx context.Context) ([]model.ContentItem, error)
	ListContentBySection(ctx context.Context, section string) ([]model.ContentItem, error)
	GetContent(ctx context.Context, key string) (*model.ContentItem, error)
	UpsertContent(ctx context.Context, item *model.ContentItem) error
	DeleteContent(ctx context.Context, key string) error
}

// CatalogStore persists products and portfolio items.
type CatalogStore interface {
	ListProducts(ctx context.Context, category model.ProductCategory) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, p *model.Product) error
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	CountProducts(ctx context.Context) (int, error)

	ListPortfolio(ctx context.Context, includeInactive bool) ([]model.PortfolioItem, error)
	GetPortfolioItem(ctx context.Context, id int64) (*model.PortfolioItem, error)
	CreatePortfolioItem(ctx context.Context, item *model.PortfolioItem) error
	UpdatePortfolioItem(ctx context.Context, item *model.PortfolioItem) error
	DeletePortfolioItem(ctx context.Context, id int64) error
}

// InquiryStore persists contact form submissions.
type InquiryStore interface {
	ListInquiries(ctx context.Context, filter model.InquiryFilter) ([]model.Inquiry, error)
	CountInquiries(ctx context.Context, status model.InquiryStatus) (int, error)
	CreateInquiry(ctx context.Context, inq *model.Inquiry) error
	UpdateInquiryStatus(ctx context.Context, id int64, status model.InquiryStatus, notes *string) error
	DeleteInquiry(ctx context.Context, id int64) error
}

// SettingsStore persists site-wide key/value settings.
type SettingsStore interface {
	GetSettings(ctx context.Context) (map[string]string, error)
	UpsertSettings(ctx context.Context, settings map[string]string) error
}

// Store is the full datastore used by the API.
type Store interface {
	AdminStore
	ContentStore
	CatalogStore
	InquiryStore
	SettingsStore

	Ping(ctx context.Context) error
	EnsureSchema(ctx context.Context) error
	Close()
}

// ClampLimit applies the default and maximum inquiry page size.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultInquiryLimit
	case limit > MaxInquiryLimit:
		return MaxInquiryLimit
	default:
		return limit
	}
}
