package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/port"
)

// CartLine is a cart entry resolved against the current catalog.
type CartLine struct {
	Product   models.Product  `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartView is the priced contents of a cart.
type CartView struct {
	Lines []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// resolvedEntry pairs a cart entry with the product it currently points to.
type resolvedEntry struct {
	entry   models.CartEntry
	product models.Product
}

// resolveEntries looks up every entry of cart. Entries whose product no
// longer exists are skipped; any other lookup failure aborts.
func resolveEntries(ctx context.Context, products port.ProductRepository, cart models.Cart) ([]resolvedEntry, error) {
	resolved := make([]resolvedEntry, 0, len(cart.Entries))
	for _, entry := range cart.Entries {
		p, err := products.GetProduct(ctx, entry.ProductID)
		if errors.Is(err, port.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve cart product[%d]: %w", entry.ProductID, err)
		}
		resolved = append(resolved, resolvedEntry{entry: entry, product: p})
	}
	return resolved, nil
}

// CartService prices session carts against the catalog.
type CartService struct {
	Store port.Store
}

// View resolves cart into priced lines and a grand total. Products that were
// deleted since they were added silently drop out of the view.
func (s *CartService) View(ctx context.Context, cart models.Cart) (CartView, error) {
	resolved, err := resolveEntries(ctx, s.Store.Products(), cart)
	if err != nil {
		return CartView{}, err
	}

	view := CartView{Lines: make([]CartLine, 0, len(resolved)), Total: decimal.Zero}
	for _, r := range resolved {
		lineTotal := r.product.Price.Mul(decimal.NewFromInt(int64(r.entry.Quantity)))
		view.Lines = append(view.Lines, CartLine{
			Product:   r.product,
			Quantity:  r.entry.Quantity,
			LineTotal: lineTotal,
		})
		view.Total = view.Total.Add(lineTotal)
	}
	return view, nil
}
