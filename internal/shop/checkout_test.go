package shop_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/shop"
)

func TestCheckoutSnapshotsPricesAndTotal(t *testing.T) {
	ctx := t.Context()
	store := newStore()
	engine := &shop.OrderEngine{Store: store}

	a := createProduct(t, store, "10.00")
	b := createProduct(t, store, "5.00")
	user := createUser(t, store, false)

	cart := models.Cart{}.Add(a.ID).Add(a.ID).Add(b.ID)

	receipt, after, err := engine.Checkout(ctx, shop.Principal{UserID: user.ID}, cart)
	require.NoError(t, err)

	assert.True(t, after.IsEmpty())
	assertDecimal(t, "25.00", receipt.Total)
	require.Len(t, receipt.Lines, 2)

	order, err := store.Orders().GetOrder(ctx, receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assertDecimal(t, "25.00", order.Total)

	lines, err := store.Orders().ListOrderLines(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, a.ID, lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assertDecimal(t, "10.00", lines[0].Price.UnitPrice)
	assert.Equal(t, b.ID, lines[1].ProductID)
	assert.Equal(t, 1, lines[1].Quantity)
	assertDecimal(t, "5.00", lines[1].Price.UnitPrice)
	assert.True(t, order.Total.Equal(models.SumLines(lines)))
}

func TestCheckoutPreconditions(t *testing.T) {
	tests := []struct {
		name    string
		who     func(user shop.Principal) shop.Principal
		cart    func(p models.Product) models.Cart
		wantErr error
	}{
		{
			name:    "anonymous with items: unauthenticated",
			who:     func(shop.Principal) shop.Principal { return shop.Principal{} },
			cart:    func(p models.Product) models.Cart { return models.Cart{}.Add(p.ID) },
			wantErr: shop.ErrUnauthenticated,
		},
		{
			name:    "anonymous with empty cart: unauthenticated first",
			who:     func(shop.Principal) shop.Principal { return shop.Principal{} },
			cart:    func(models.Product) models.Cart { return models.Cart{} },
			wantErr: shop.ErrUnauthenticated,
		},
		{
			name:    "logged in with empty cart: empty cart",
			who:     func(user shop.Principal) shop.Principal { return user },
			cart:    func(models.Product) models.Cart { return models.Cart{} },
			wantErr: shop.ErrEmptyCart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			store := newStore()
			engine := &shop.OrderEngine{Store: store}
			p := createProduct(t, store, "3.50")
			user := createUser(t, store, false)

			cart := tt.cart(p)
			_, after, err := engine.Checkout(ctx, tt.who(shop.Principal{UserID: user.ID}), cart)
			require.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, cart, after)

			n, err := store.Orders().CountOrders(ctx)
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestCheckoutSkipsDeletedProducts(t *testing.T) {
	ctx := t.Context()
	store := newStore()
	engine := &shop.OrderEngine{Store: store}

	kept := createProduct(t, store, "12.30")
	gone := createProduct(t, store, "99.00")
	user := createUser(t, store, false)

	cart := models.Cart{}.Add(kept.ID).Add(gone.ID).Add(kept.ID)
	require.NoError(t, store.Products().DeleteProduct(ctx, gone.ID))

	receipt, after, err := engine.Checkout(ctx, shop.Principal{UserID: user.ID}, cart)
	require.NoError(t, err)
	assert.True(t, after.IsEmpty())

	assertDecimal(t, "24.60", receipt.Total)
	lines, err := store.Orders().ListOrderLines(ctx, receipt.OrderID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, kept.ID, lines[0].ProductID)
}

func TestCheckoutUsesCurrentPriceAndSnapshotsIt(t *testing.T) {
	ctx := t.Context()
	store := newStore()
	engine := &shop.OrderEngine{Store: store}

	p := createProduct(t, store, "100.00")
	user := createUser(t, store, false)
	cart := models.Cart{}.Add(p.ID)

	// price changes between add-to-cart and checkout
	p.Price = decimal.RequireFromString("80.00")
	require.NoError(t, store.Products().UpdateProduct(ctx, p))

	receipt, _, err := engine.Checkout(ctx, shop.Principal{UserID: user.ID}, cart)
	require.NoError(t, err)
	assertDecimal(t, "80.00", receipt.Total)

	// and again after the order is placed
	p.Price = decimal.RequireFromString("1.00")
	require.NoError(t, store.Products().UpdateProduct(ctx, p))

	order, err := store.Orders().GetOrder(ctx, receipt.OrderID)
	require.NoError(t, err)
	assertDecimal(t, "80.00", order.Total)

	lines, err := store.Orders().ListOrderLines(ctx, receipt.OrderID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assertDecimal(t, "80.00", lines[0].Price.UnitPrice)
}

func TestCheckoutIsAtomic(t *testing.T) {
	ctx := t.Context()
	inner := newStore()
	engine := &shop.OrderEngine{Store: failingStore{inner}}

	p := createProduct(t, inner, "7.00")
	user := createUser(t, inner, false)
	cart := models.Cart{}.Add(p.ID)

	_, after, err := engine.Checkout(ctx, shop.Principal{UserID: user.ID}, cart)
	require.ErrorIs(t, err, errDiskFull)

	assert.Equal(t, cart, after, "cart must survive a failed checkout")

	n, err := inner.Orders().CountOrders(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "order row must not outlive its failed lines")
}

func TestCheckoutDoubleSubmit(t *testing.T) {
	ctx := t.Context()
	store := newStore()
	engine := &shop.OrderEngine{Store: store}

	p := createProduct(t, store, "2.00")
	user := createUser(t, store, false)
	who := shop.Principal{UserID: user.ID}
	cart := models.Cart{}.Add(p.ID)

	first, cleared, err := engine.Checkout(ctx, who, cart)
	require.NoError(t, err)

	_, _, err = engine.Checkout(ctx, who, cleared)
	require.ErrorIs(t, err, shop.ErrEmptyCart)

	// replaying the stale cart is not deduplicated
	second, _, err := engine.Checkout(ctx, who, cart)
	require.NoError(t, err)
	assert.NotEqual(t, first.OrderID, second.OrderID)

	n, err := store.Orders().CountOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCheckoutAllProductsGone(t *testing.T) {
	ctx := t.Context()
	store := newStore()
	engine := &shop.OrderEngine{Store: store}

	p := createProduct(t, store, "4.00")
	user := createUser(t, store, false)
	cart := models.Cart{}.Add(p.ID)
	require.NoError(t, store.Products().DeleteProduct(ctx, p.ID))

	receipt, after, err := engine.Checkout(ctx, shop.Principal{UserID: user.ID}, cart)
	require.NoError(t, err)
	assert.True(t, after.IsEmpty())
	assert.True(t, receipt.Total.Equal(decimal.Zero))
	assert.Empty(t, receipt.Lines)
}

func TestOrderHistoryOwnership(t *testing.T) {
	ctx := t.Context()
	store := newStore()
	engine := &shop.OrderEngine{Store: store}

	p := createProduct(t, store, "1.50")
	alice := shop.Principal{UserID: createUser(t, store, false).ID}
	bob := shop.Principal{UserID: createUser(t, store, false).ID}

	receipt, _, err := engine.Checkout(ctx, alice, models.Cart{}.Add(p.ID))
	require.NoError(t, err)

	details, err := engine.Order(ctx, alice, receipt.OrderID)
	require.NoError(t, err)
	assert.Len(t, details.Lines, 1)

	_, err = engine.Order(ctx, bob, receipt.OrderID)
	require.ErrorIs(t, err, shop.ErrNotFound)

	_, err = engine.Order(ctx, shop.Principal{}, receipt.OrderID)
	require.ErrorIs(t, err, shop.ErrUnauthenticated)

	orders, err := engine.Orders(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = engine.Orders(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
