package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kingpotter-hr/full9-website/internal/model"
	"github.com/lib/pq"
)

const productColumns = `id, name, category, icon, description, features, image_url, is_active, created_at`

// ListProducts returns products newest first, optionally filtered by category.
func (r *Repository) ListProducts(ctx context.Context, category model.ProductCategory) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// GetProduct retrieves a product by id.
func (r *Repository) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	var features []string

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.Icon,
		&p.Description,
		pq.Array(&features),
		&p.ImageURL,
		&p.IsActive,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if features == nil {
		features = []string{}
	}
	p.Features = features
	return &p, nil
}

// CreateProduct inserts a product and sets its ID and CreatedAt.
func (r *Repository) CreateProduct(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (name, category, icon, description, features, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		p.Name,
		p.Category,
		p.Icon,
		p.Description,
		pq.Array(p.Features),
		p.ImageURL,
		p.IsActive,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct replaces every editable field of a product.
func (r *Repository) UpdateProduct(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, icon = $4, description = $5,
		    features = $6, image_url = $7, is_active = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Category,
		p.Icon,
		p.Description,
		pq.Array(p.Features),
		p.ImageURL,
		p.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "products", id)
}

// CountProducts returns the number of stored products.
func (r *Repository) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

const portfolioColumns = `id, title, description, image_url, category, display_order, is_active, created_at`

// ListPortfolio returns portfolio items by display order. Inactive items are
// included only when includeInactive is set.
func (r *Repository) ListPortfolio(ctx context.Context, includeInactive bool) ([]model.PortfolioItem, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY display_order, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio: %w", err)
	}
	defer rows.Close()

	items := make([]model.PortfolioItem, 0)
	for rows.Next() {
		var it model.PortfolioItem
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.ImageURL, &it.Category, &it.DisplayOrder, &it.IsActive, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetPortfolioItem retrieves a portfolio item by id.
func (r *Repository) GetPortfolioItem(ctx context.Context, id int64) (*model.PortfolioItem, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio WHERE id = $1`

	var it model.PortfolioItem
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&it.ID, &it.Title, &it.Description, &it.ImageURL, &it.Category, &it.DisplayOrder, &it.IsActive, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get portfolio item: %w", err)
	}
	return &it, nil
}

// CreatePortfolioItem inserts a portfolio item and sets its ID and CreatedAt.
func (r *Repository) CreatePortfolioItem(ctx context.Context, it *model.PortfolioItem) error {
	query := `
		INSERT INTO portfolio (title, description, image_url, category, display_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, it.Title, it.Description, it.ImageURL, it.Category, it.DisplayOrder, it.IsActive).
		Scan(&it.ID, &it.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create portfolio item: %w", err)
	}
	return nil
}

// UpdatePortfolioItem replaces every editable field of a portfolio item.
func (r *Repository) UpdatePortfolioItem(ctx context.Context, it *model.PortfolioItem) error {
	query := `
		UPDATE portfolio
		SET title = $2, description = $3, image_url = $4, category = $5,
		    display_order = $6, is_active = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, it.ID, it.Title, it.Description, it.ImageURL, it.Category, it.DisplayOrder, it.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update portfolio item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePortfolioItem removes a portfolio item.
func (r *Repository) DeletePortfolioItem(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "portfolio", id)
}

// deleteByID deletes one row from a fixed table name.
func (r *Repository) deleteByID(ctx context.Context, table string, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
