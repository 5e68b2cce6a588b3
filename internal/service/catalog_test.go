package service

import (
	"context"
	"testing"

	"github.com/kingpotter-hr/full9-website/internal/metrics"
	"github.com/kingpotter-hr/full9-website/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_ProductLifecycle(t *testing.T) {
	rec := metrics.NewInMemory()
	svc := NewCatalogService(newTestStore(t), rec)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, ProductInput{
		Name:        "  Shockproof Case ",
		Category:    model.CategoryCase,
		Description: "Military grade drop protection",
		Features:    []string{"Drop tested", " ", "Slim"},
		ImageURL:    ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Shockproof Case", p.Name)
	assert.Equal(t, model.DefaultProductIcon, p.Icon)
	assert.Equal(t, []string{"Drop tested", "Slim"}, p.Features)
	assert.Nil(t, p.ImageURL)
	assert.True(t, p.IsActive)

	updated, err := svc.UpdateProduct(ctx, p.ID, ProductInput{
		Name:        "Shockproof Case v2",
		Category:    model.CategoryCase,
		Icon:        "fas fa-shield",
		Description: "Now thinner",
		ImageURL:    ptr("https://cdn.full9.co.th/case.png"),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsActive, "omitted is_active keeps current value")

	got, err := svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "fas fa-shield", got.Icon)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, "https://cdn.full9.co.th/case.png", *got.ImageURL)
	assert.Empty(t, got.Features)

	_, err = svc.UpdateProduct(ctx, p.ID, ProductInput{
		Name: "x", Category: model.CategoryCase, Description: "y", IsActive: ptr(false),
	})
	require.NoError(t, err)
	got, err = svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	_, err = svc.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.UpdateProduct(ctx, p.ID, ProductInput{Name: "x", Category: model.CategoryCase, Description: "y"})
	assert.ErrorIs(t, err, ErrNotFound)

	snap := rec.Snapshot()
	assert.Equal(t, uint64(1), snap.ContentChanges["product/create"])
	assert.Equal(t, uint64(2), snap.ContentChanges["product/update"])
	assert.Equal(t, uint64(1), snap.ContentChanges["product/delete"])
}

func TestCatalogService_ListProductsByCategory(t *testing.T) {
	svc := NewCatalogService(newTestStore(t), nil)
	ctx := context.Background()

	for _, cat := range []model.ProductCategory{model.CategoryCase, model.CategoryCharger, model.CategoryCase} {
		_, err := svc.CreateProduct(ctx, ProductInput{Name: "p", Category: cat, Description: "d"})
		require.NoError(t, err)
	}

	cases, err := svc.ListProducts(ctx, "case")
	require.NoError(t, err)
	assert.Len(t, cases, 2)

	all, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.ListProducts(ctx, "phones")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCatalogService_ProductValidation(t *testing.T) {
	svc := NewCatalogService(newTestStore(t), nil)

	tests := []struct {
		name  string
		in    ProductInput
		field string
	}{
		{"missing name", ProductInput{Category: model.CategoryCase, Description: "d"}, "name"},
		{"missing description", ProductInput{Name: "n", Category: model.CategoryCase}, "description"},
		{"bad category", ProductInput{Name: "n", Description: "d", Category: "phone"}, "category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCatalogService_Portfolio(t *testing.T) {
	svc := NewCatalogService(newTestStore(t), nil)
	ctx := context.Background()

	second, err := svc.CreatePortfolioItem(ctx, PortfolioInput{Title: "Mall kiosk", ImageURL: "/img/k.jpg", DisplayOrder: 2})
	require.NoError(t, err)
	first, err := svc.CreatePortfolioItem(ctx, PortfolioInput{Title: "OEM run", ImageURL: "/img/o.jpg", DisplayOrder: 1})
	require.NoError(t, err)
	_, err = svc.CreatePortfolioItem(ctx, PortfolioInput{Title: "Draft", ImageURL: "/img/d.jpg", IsActive: ptr(false)})
	require.NoError(t, err)

	public, err := svc.ListPortfolio(ctx, false)
	require.NoError(t, err)
	require.Len(t, public, 2)
	assert.Equal(t, first.ID, public[0].ID)
	assert.Equal(t, second.ID, public[1].ID)

	all, err := svc.ListPortfolio(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.UpdatePortfolioItem(ctx, second.ID, PortfolioInput{Title: "Mall kiosk", ImageURL: "/img/k2.jpg", DisplayOrder: 0})
	require.NoError(t, err)
	got, err := svc.GetPortfolioItem(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "/img/k2.jpg", got.ImageURL)

	_, err = svc.CreatePortfolioItem(ctx, PortfolioInput{Title: "No image"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.CreatePortfolioItem(ctx, PortfolioInput{Title: "t", ImageURL: "/i", DisplayOrder: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, svc.DeletePortfolioItem(ctx, second.ID))
	assert.ErrorIs(t, svc.DeletePortfolioItem(ctx, second.ID), ErrNotFound)
}
