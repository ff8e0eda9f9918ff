package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusPending is the status of every newly placed order.
const OrderStatusPending = "pending"

// Order is the model for the 'orders' table
type Order struct {
	ID        int64           `json:"id" db:"id"`
	UserID    int64           `json:"userId" db:"user_id"`
	Total     decimal.Decimal `json:"total" db:"total"`
	Status    string          `json:"status" db:"status"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// PriceSnapshot is a product's unit price frozen at checkout. Order lines keep
// it so later catalog price edits never change a placed order.
type PriceSnapshot struct {
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// SnapshotPrice captures the current price of p.
func SnapshotPrice(p Product) PriceSnapshot {
	return PriceSnapshot{UnitPrice: p.Price}
}

// Total returns the snapshot price times quantity.
func (s PriceSnapshot) Total(quantity int) decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// OrderLine is the model for the 'order_items' table
type OrderLine struct {
	ID        int64         `json:"id" db:"id"`
	OrderID   int64         `json:"orderId" db:"order_id"`
	ProductID int64         `json:"productId" db:"product_id"`
	Quantity  int           `json:"quantity" db:"quantity"`
	Price     PriceSnapshot `json:"price" db:"unit_price"`
}

// LineTotal is quantity times the captured unit price.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.Price.Total(l.Quantity)
}

// SumLines adds up the line totals of lines.
func SumLines(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total
}
