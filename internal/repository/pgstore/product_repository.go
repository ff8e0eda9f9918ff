package pgstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/port"
)

type productRepository struct {
	q dbtx
}

const productColumns = "id, name, price, category, image, description, created_at"

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Image, &p.Description, &p.CreatedAt)
	return p, err
}

func (r *productRepository) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id))
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
		args = append(args, containsPattern(filter.Category))
		where = append(where, "category ILIKE $"+strconv.Itoa(len(args)))
	}
	if filter.Name != "" {
		args = append(args, containsPattern(filter.Name))
		where = append(where, "name ILIKE $"+strconv.Itoa(len(args)))
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.q.Query(ctx, query, args...)
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
	rows, err := r.q.Query(ctx, "SELECT DISTINCT category FROM products ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	err := r.q.QueryRow(ctx,
		`INSERT INTO products (name, price, category, image, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		p.Name, p.Price, p.Category, p.Image, p.Description, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", mapError(err))
	}
	return p, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, p models.Product) error {
	tag, err := r.q.Exec(ctx,
		"UPDATE products SET name = $1, price = $2, category = $3, image = $4, description = $5 WHERE id = $6",
		p.Name, p.Price, p.Category, p.Image, p.Description, p.ID)
	if err != nil {
		return fmt.Errorf("update product[%d]: %w", p.ID, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update product[%d]: %w", p.ID, port.ErrNotFound)
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product[%d]: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete product[%d]: %w", id, port.ErrNotFound)
	}
	return nil
}
