package mysqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/port"
)

type productRepository struct {
	q dbtx
}

const productColumns = "id, name, price, category, image, description, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Image, &p.Description, &p.CreatedAt)
	return p, err
}

func (r *productRepository) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	row := r.q.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
	p, err := scanProduct(row)
	if err != nil {
		return models.Product{}, fmt.Errorf("scan product[%d]: %w", id, mapError(err))
	}
	return p, nil
}

func (r *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	var (
		where []string
		args  []any
	)
	if filter.Category != "" {
		where = append(where, "LOWER(category) LIKE ?")
		args = append(args, containsPattern(filter.Category))
	}
	if filter.Name != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, containsPattern(filter.Name))
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *productRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, "SELECT DISTINCT category FROM products ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *productRepository) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	result, err := r.q.ExecContext(ctx,
		"INSERT INTO products (name, price, category, image, description, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		p.Name, p.Price, p.Category, p.Image, p.Description, p.CreatedAt)
	if err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", mapError(err))
	}

	p.ID, err = result.LastInsertId()
	if err != nil {
		return models.Product{}, fmt.Errorf("result.LastInsertId: %w", err)
	}
	return p, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, p models.Product) error {
	result, err := r.q.ExecContext(ctx,
		"UPDATE products SET name = ?, price = ?, category = ?, image = ?, description = ? WHERE id = ?",
		p.Name, p.Price, p.Category, p.Image, p.Description, p.ID)
	if err != nil {
		return fmt.Errorf("update product[%d]: %w", p.ID, mapError(err))
	}

	// MySQL reports 0 affected rows when the new values equal the old ones,
	// so existence is checked separately.
	if n, _ := result.RowsAffected(); n == 0 {
		if _, err := r.GetProduct(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete product[%d]: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("delete product[%d]: %w", id, port.ErrNotFound)
	}
	return nil
}
