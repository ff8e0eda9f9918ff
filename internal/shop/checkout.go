package shop

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/port"
)

// Receipt confirms a placed order.
type Receipt struct {
	OrderID int64              `json:"orderId"`
	Total   decimal.Decimal    `json:"total"`
	Lines   []models.OrderLine `json:"items"`
}

// OrderEngine turns session carts into persisted orders.
type OrderEngine struct {
	Store port.Store
}

// Checkout places an order for who from cart and returns the receipt along
// with the cart the session should hold afterwards.
//
// Prices are read from the catalog at this moment and frozen into the order
// lines. Entries whose product has been deleted are left out of the order.
// The order row and its lines are written in one transaction; on any failure
// nothing is persisted and the original cart is returned unchanged.
//
// There is no duplicate-submission guard beyond clearing the cart: a second
// call with the now empty cart fails with ErrEmptyCart.
func (e *OrderEngine) Checkout(ctx context.Context, who Principal, cart models.Cart) (Receipt, models.Cart, error) {
	if !who.Authenticated() {
		return Receipt{}, cart, ErrUnauthenticated
	}
	if cart.IsEmpty() {
		return Receipt{}, cart, ErrEmptyCart
	}

	var receipt Receipt
	err := e.Store.InTx(ctx, func(tx port.Store) error {
		resolved, err := resolveEntries(ctx, tx.Products(), cart)
		if err != nil {
			return err
		}

		lines := make([]models.OrderLine, 0, len(resolved))
		for _, r := range resolved {
			lines = append(lines, models.OrderLine{
				ProductID: r.product.ID,
				Quantity:  r.entry.Quantity,
				Price:     models.SnapshotPrice(r.product),
			})
		}

		order, err := tx.Orders().CreateOrder(ctx, models.Order{
			UserID: who.UserID,
			Total:  models.SumLines(lines),
			Status: models.OrderStatusPending,
		})
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for i := range lines {
			lines[i].OrderID = order.ID
			if lines[i], err = tx.Orders().AddOrderLine(ctx, lines[i]); err != nil {
				return fmt.Errorf("add order line: %w", err)
			}
		}

		receipt = Receipt{OrderID: order.ID, Total: order.Total, Lines: lines}
		return nil
	})
	if err != nil {
		return Receipt{}, cart, fmt.Errorf("checkout: %w", err)
	}

	return receipt, models.Cart{}, nil
}

// OrderDetails is an order together with its lines.
type OrderDetails struct {
	Order models.Order       `json:"order"`
	Lines []models.OrderLine `json:"items"`
}

// Orders lists the order history of the signed-in user.
func (e *OrderEngine) Orders(ctx context.Context, who Principal) ([]models.Order, error) {
	if !who.Authenticated() {
		return nil, ErrUnauthenticated
	}
	return e.Store.Orders().ListOrdersByUser(ctx, who.UserID)
}

// Order returns one order of the signed-in user. Orders owned by someone
// else are reported as not found.
func (e *OrderEngine) Order(ctx context.Context, who Principal, orderID int64) (OrderDetails, error) {
	if !who.Authenticated() {
		return OrderDetails{}, ErrUnauthenticated
	}

	order, err := e.Store.Orders().GetOrder(ctx, orderID)
	if err != nil {
		return OrderDetails{}, err
	}
	if order.UserID != who.UserID {
		return OrderDetails{}, fmt.Errorf("order[%d]: %w", orderID, ErrNotFound)
	}

	lines, err := e.Store.Orders().ListOrderLines(ctx, orderID)
	if err != nil {
		return OrderDetails{}, err
	}
	return OrderDetails{Order: order, Lines: lines}, nil
}
