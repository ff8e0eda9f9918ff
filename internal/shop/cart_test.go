package shop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/shop"
)

func TestCartViewPricesEntries(t *testing.T) {
	store := newStore()
	svc := &shop.CartService{Store: store}

	a := createProduct(t, store, "899.99")
	b := createProduct(t, store, "29.99")

	view, err := svc.View(t.Context(), models.Cart{}.Add(a.ID).Add(b.ID).Add(b.ID))
	require.NoError(t, err)

	require.Len(t, view.Lines, 2)
	assert.Equal(t, a.ID, view.Lines[0].Product.ID)
	assertDecimal(t, "899.99", view.Lines[0].LineTotal)
	assert.Equal(t, 2, view.Lines[1].Quantity)
	assertDecimal(t, "59.98", view.Lines[1].LineTotal)
	assertDecimal(t, "959.97", view.Total)
}

func TestCartViewSkipsMissingProducts(t *testing.T) {
	ctx := t.Context()
	store := newStore()
	svc := &shop.CartService{Store: store}

	kept := createProduct(t, store, "10.00")
	gone := createProduct(t, store, "5.00")
	cart := models.Cart{}.Add(gone.ID).Add(kept.ID).Add(424242)
	require.NoError(t, store.Products().DeleteProduct(ctx, gone.ID))

	view, err := svc.View(ctx, cart)
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.Equal(t, kept.ID, view.Lines[0].Product.ID)
	assertDecimal(t, "10.00", view.Total)

	// the cart itself is not rewritten by viewing it
	assert.Len(t, cart.Entries, 3)
}

func TestCartViewEmpty(t *testing.T) {
	svc := &shop.CartService{Store: newStore()}

	view, err := svc.View(t.Context(), models.Cart{})
	require.NoError(t, err)

	assert.Empty(t, view.Lines)
	assertDecimal(t, "0", view.Total)
}
