package mysqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/01moynul/storefront-golang/internal/models"
)

type orderRepository struct {
	q dbtx
}

const orderColumns = "id, user_id, total, status, created_at"

func scanOrder(row rowScanner) (models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt)
	return o, err
}

func (r *orderRepository) CreateOrder(ctx context.Context, o models.Order) (models.Order, error) {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}

	result, err := r.q.ExecContext(ctx,
		"INSERT INTO orders (user_id, total, status, created_at) VALUES (?, ?, ?, ?)",
		o.UserID, o.Total, o.Status, o.CreatedAt)
	if err != nil {
		return models.Order{}, fmt.Errorf("insert order: %w", mapError(err))
	}

	o.ID, err = result.LastInsertId()
	if err != nil {
		return models.Order{}, fmt.Errorf("result.LastInsertId: %w", err)
	}
	return o, nil
}

func (r *orderRepository) AddOrderLine(ctx context.Context, line models.OrderLine) (models.OrderLine, error) {
	result, err := r.q.ExecContext(ctx,
		"INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?)",
		line.OrderID, line.ProductID, line.Quantity, line.Price.UnitPrice)
	if err != nil {
		return models.OrderLine{}, fmt.Errorf("insert order item: %w", mapError(err))
	}

	line.ID, err = result.LastInsertId()
	if err != nil {
		return models.OrderLine{}, fmt.Errorf("result.LastInsertId: %w", err)
	}
	return line, nil
}

func (r *orderRepository) GetOrder(ctx context.Context, id int64) (models.Order, error) {
	o, err := scanOrder(r.q.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = ?", id))
	if err != nil {
		return models.Order{}, fmt.Errorf("scan order[%d]: %w", id, mapError(err))
	}
	return o, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) ListOrderLines(ctx context.Context, orderID int64) ([]models.OrderLine, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT id, order_id, product_id, quantity, unit_price FROM order_items WHERE order_id = ? ORDER BY id", orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	lines := []models.OrderLine{}
	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.Price.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *orderRepository) CountOrders(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}
