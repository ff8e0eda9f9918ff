package shop_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/port"
	"github.com/01moynul/storefront-golang/internal/repository/memstore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func createProduct(t *testing.T, store port.Store, price string) models.Product {
	t.Helper()

	p, err := store.Products().CreateProduct(t.Context(), models.Product{
		Name:        gofakeit.ProductName(),
		Price:       decimal.RequireFromString(price),
		Category:    gofakeit.ProductCategory(),
		Image:       models.DefaultProductImage,
		Description: gofakeit.ProductDescription(),
	})
	require.NoError(t, err)
	return p
}

func createUser(t *testing.T, store port.Store, admin bool) models.User {
	t.Helper()

	u, err := store.Users().CreateUser(t.Context(), models.User{
		Name:         gofakeit.Name(),
		Email:        gofakeit.Email(),
		PasswordHash: "x",
		IsAdmin:      admin,
	})
	require.NoError(t, err)
	return u
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

// failingStore wraps a store so that writing order lines always fails.
type failingStore struct {
	port.Store
}

func (s failingStore) Orders() port.OrderRepository {
	return failingOrders{s.Store.Orders()}
}

func (s failingStore) InTx(ctx context.Context, fn func(tx port.Store) error) error {
	return s.Store.InTx(ctx, func(tx port.Store) error {
		return fn(failingStore{tx})
	})
}

type failingOrders struct {
	port.OrderRepository
}

var errDiskFull = errors.New("disk full")

func (failingOrders) AddOrderLine(context.Context, models.OrderLine) (models.OrderLine, error) {
	return models.OrderLine{}, errDiskFull
}

func newStore() *memstore.Store {
	return memstore.New()
}
