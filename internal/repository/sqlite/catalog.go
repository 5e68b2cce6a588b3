package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kingpotter-hr/full9-website/internal/model"
)

const productColumns = `id, name, category, icon, description, features, image_url, is_active, created_at`

// ListProducts returns products newest first, optionally filtered by category.
func (s *Store) ListProducts(ctx context.Context, category model.ProductCategory) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// GetProduct retrieves a product by id.
func (s *Store) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	p, err := scanProduct(s.Reader.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, notFound(err))
	}
	return p, nil
}

func scanProduct(row rowScanner) (*model.Product, error) {
	var p model.Product
	var features, created string

	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Icon, &p.Description, &features, &p.ImageURL, &p.IsActive, &created)
	if err != nil {
		return nil, err
	}

	p.Features = []string{}
	if features != "" {
		if err := json.Unmarshal([]byte(features), &p.Features); err != nil {
			return nil, fmt.Errorf("decode features: %w", err)
		}
	}

	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &p, nil
}

func encodeFeatures(features []string) (string, error) {
	if features == nil {
		features = []string{}
	}
	b, err := json.Marshal(features)
	if err != nil {
		return "", fmt.Errorf("encode features: %w", err)
	}
	return string(b), nil
}

// CreateProduct inserts a product and sets its ID and CreatedAt.
func (s *Store) CreateProduct(ctx context.Context, p *model.Product) error {
	const query = `
		INSERT INTO products (name, category, icon, description, features, image_url, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	features, err := encodeFeatures(p.Features)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	res, err := s.Writer.ExecContext(ctx, query,
		p.Name, p.Category, p.Icon, p.Description, features, p.ImageURL, p.IsActive, formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	if p.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("create product: last insert id: %w", err)
	}
	p.CreatedAt = now
	return nil
}

// UpdateProduct replaces every editable field of a product.
func (s *Store) UpdateProduct(ctx context.Context, p *model.Product) error {
	const query = `
		UPDATE products
		SET name = ?, category = ?, icon = ?, description = ?, features = ?, image_url = ?, is_active = ?
		WHERE id = ?
	`

	features, err := encodeFeatures(p.Features)
	if err != nil {
		return err
	}

	res, err := s.Writer.ExecContext(ctx, query,
		p.Name, p.Category, p.Icon, p.Description, features, p.ImageURL, p.IsActive, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product %d: %w", p.ID, err)
	}
	return affectedOrNotFound(res)
}

// DeleteProduct removes a product.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.Writer.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return affectedOrNotFound(res)
}

// CountProducts returns the number of stored products.
func (s *Store) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := s.Reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

const portfolioColumns = `id, title, description, image_url, category, display_order, is_active, created_at`

// ListPortfolio returns portfolio items by display order.
func (s *Store) ListPortfolio(ctx context.Context, includeInactive bool) ([]model.PortfolioItem, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio`
	if !includeInactive {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY display_order, id`

	rows, err := s.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list portfolio: %w", err)
	}
	defer rows.Close()

	items := make([]model.PortfolioItem, 0)
	for rows.Next() {
		it, err := scanPortfolioItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan portfolio item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func scanPortfolioItem(row rowScanner) (*model.PortfolioItem, error) {
	var it model.PortfolioItem
	var created string
	err := row.Scan(&it.ID, &it.Title, &it.Description, &it.ImageURL, &it.Category, &it.DisplayOrder, &it.IsActive, &created)
	if err != nil {
		return nil, err
	}
	if it.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &it, nil
}

// GetPortfolioItem retrieves a portfolio item by id.
func (s *Store) GetPortfolioItem(ctx context.Context, id int64) (*model.PortfolioItem, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio WHERE id = ?`
	it, err := scanPortfolioItem(s.Reader.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get portfolio item %d: %w", id, notFound(err))
	}
	return it, nil
}

// CreatePortfolioItem inserts a portfolio item and sets its ID and CreatedAt.
func (s *Store) CreatePortfolioItem(ctx context.Context, it *model.PortfolioItem) error {
	const query = `
		INSERT INTO portfolio (title, description, image_url, category, display_order, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	now := s.now().UTC()
	res, err := s.Writer.ExecContext(ctx, query,
		it.Title, it.Description, it.ImageURL, it.Category, it.DisplayOrder, it.IsActive, formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("create portfolio item: %w", err)
	}

	if it.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("create portfolio item: last insert id: %w", err)
	}
	it.CreatedAt = now
	return nil
}

// UpdatePortfolioItem replaces every editable field of a portfolio item.
func (s *Store) UpdatePortfolioItem(ctx context.Context, it *model.PortfolioItem) error {
	const query = `
		UPDATE portfolio
		SET title = ?, description = ?, image_url = ?, category = ?, display_order = ?, is_active = ?
		WHERE id = ?
	`

	res, err := s.Writer.ExecContext(ctx, query,
		it.Title, it.Description, it.ImageURL, it.Category, it.DisplayOrder, it.IsActive, it.ID,
	)
	if err != nil {
		return fmt.Errorf("update portfolio item %d: %w", it.ID, err)
	}
	return affectedOrNotFound(res)
}

// DeletePortfolioItem removes a portfolio item.
func (s *Store) DeletePortfolioItem(ctx context.Context, id int64) error {
	res, err := s.Writer.ExecContext(ctx, `DELETE FROM portfolio WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete portfolio item %d: %w", id, err)
	}
	return affectedOrNotFound(res)
}
