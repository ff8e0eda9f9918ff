// Package storetest is the behaviour every port.Store implementation must
// show. Each backend runs Suite from its own tests.
package storetest

import (
	"context"
	"errors"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/port"
)

// Suite checks a port.Store. Open must return a store with no rows in it;
// it runs before every test.
type Suite struct {
	suite.Suite

	Open func(ctx context.Context) (port.Store, error)

	store port.Store
}

func (s *Suite) SetupTest() {
	store, err := s.Open(s.T().Context())
	s.Require().NoError(err)
	s.store = store
}

var errAbort = errors.New("abort")

// decimals compare by value: 10.5 and 10.50 are the same price.
var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func randomProduct() models.Product {
	return models.Product{
		Name:        gofakeit.ProductName(),
		Price:       decimal.NewFromFloat(gofakeit.Price(1, 5000)).Round(2),
		Category:    gofakeit.ProductCategory(),
		Image:       models.DefaultProductImage,
		Description: gofakeit.ProductDescription(),
	}
}

func (s *Suite) createUser(email string, admin bool) models.User {
	u, err := s.store.Users().CreateUser(s.T().Context(), models.User{
		Name:         gofakeit.Name(),
		Email:        email,
		PasswordHash: gofakeit.Password(true, true, true, false, false, 20),
		IsAdmin:      admin,
	})
	s.Require().NoError(err)
	return u
}

func (s *Suite) TestProductLifecycle() {
	ctx := s.T().Context()
	products := s.store.Products()

	want := randomProduct()
	want.Price = decimal.RequireFromString("2499.99")

	created, err := products.CreateProduct(ctx, want)
	s.Require().NoError(err)
	s.NotZero(created.ID)
	s.False(created.CreatedAt.IsZero())

	got, err := products.GetProduct(ctx, created.ID)
	s.Require().NoError(err)
	s.Empty(cmp.Diff(created, got, decimalComparer, cmpopts.IgnoreFields(models.Product{}, "CreatedAt")))
	s.Equal("2499.99", got.Price.StringFixed(2))

	got.Name = "Renamed"
	got.Price = decimal.RequireFromString("10.50")
	got.Image = "other.png"
	s.Require().NoError(products.UpdateProduct(ctx, got))

	// saving identical values again is still a success
	s.Require().NoError(products.UpdateProduct(ctx, got))

	updated, err := products.GetProduct(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Renamed", updated.Name)
	s.Equal("other.png", updated.Image)
	s.True(decimal.RequireFromString("10.5").Equal(updated.Price))

	s.Require().NoError(products.DeleteProduct(ctx, created.ID))

	_, err = products.GetProduct(ctx, created.ID)
	s.ErrorIs(err, port.ErrNotFound)
	s.ErrorIs(products.DeleteProduct(ctx, created.ID), port.ErrNotFound)
	s.ErrorIs(products.UpdateProduct(ctx, got), port.ErrNotFound)
}

func (s *Suite) TestListProductsFilters() {
	ctx := s.T().Context()
	products := s.store.Products()

	for _, p := range []models.Product{
		{Name: "Smartphone Samsung", Category: "Electronics", Price: decimal.NewFromInt(899)},
		{Name: "Fone Bluetooth", Category: "Electronics", Price: decimal.NewFromInt(149)},
		{Name: "Camiseta 100% algodao", Category: "Clothes", Price: decimal.NewFromInt(29)},
		{Name: "Livro Go", Category: "Books", Price: decimal.NewFromInt(59)},
	} {
		p.Image = models.DefaultProductImage
		_, err := products.CreateProduct(ctx, p)
		s.Require().NoError(err)
	}

	tests := []struct {
		name   string
		filter models.ProductFilter
		want   []string
	}{
		{name: "no filter", want: []string{"Smartphone Samsung", "Fone Bluetooth", "Camiseta 100% algodao", "Livro Go"}},
		{name: "category ignores case", filter: models.ProductFilter{Category: "ELECTRO"}, want: []string{"Smartphone Samsung", "Fone Bluetooth"}},
		{name: "name substring", filter: models.ProductFilter{Name: "blue"}, want: []string{"Fone Bluetooth"}},
		{name: "both", filter: models.ProductFilter{Category: "electronics", Name: "SAM"}, want: []string{"Smartphone Samsung"}},
		{name: "percent is literal", filter: models.ProductFilter{Name: "100%"}, want: []string{"Camiseta 100% algodao"}},
		{name: "underscore is literal", filter: models.ProductFilter{Name: "o_g"}, want: nil},
		{name: "no match", filter: models.ProductFilter{Name: "geladeira"}, want: nil},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := products.ListProducts(ctx, tt.filter)
			s.Require().NoError(err)

			var names []string
			for _, p := range got {
				names = append(names, p.Name)
			}
			s.Equal(tt.want, names)
		})
	}

	categories, err := products.ListCategories(ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Books", "Clothes", "Electronics"}, categories)
}

func (s *Suite) TestUsers() {
	ctx := s.T().Context()
	users := s.store.Users()

	email := gofakeit.Email()
	admin := s.createUser(email, true)
	s.NotZero(admin.ID)

	got, err := users.GetUserByEmail(ctx, email)
	s.Require().NoError(err)
	s.Equal(admin.ID, got.ID)
	s.True(got.IsAdmin)
	s.Equal(admin.PasswordHash, got.PasswordHash)

	got, err = users.GetUser(ctx, admin.ID)
	s.Require().NoError(err)
	s.Equal(email, got.Email)

	_, err = users.CreateUser(ctx, models.User{Name: "Again", Email: email, PasswordHash: "x"})
	s.ErrorIs(err, port.ErrDuplicate)

	_, err = users.GetUserByEmail(ctx, "nobody@example.com")
	s.ErrorIs(err, port.ErrNotFound)
	_, err = users.GetUser(ctx, admin.ID+1000)
	s.ErrorIs(err, port.ErrNotFound)

	s.createUser(gofakeit.Email(), false)
	n, err := users.CountUsers(ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *Suite) TestOrders() {
	ctx := s.T().Context()
	user := s.createUser(gofakeit.Email(), false)
	other := s.createUser(gofakeit.Email(), false)
	product, err := s.store.Products().CreateProduct(ctx, randomProduct())
	s.Require().NoError(err)

	var orderIDs []int64
	for range 2 {
		lines := []models.OrderLine{
			{ProductID: product.ID, Quantity: 2, Price: models.SnapshotPrice(product)},
		}
		order, err := s.store.Orders().CreateOrder(ctx, models.Order{
			UserID: user.ID,
			Total:  models.SumLines(lines),
			Status: models.OrderStatusPending,
		})
		s.Require().NoError(err)
		orderIDs = append(orderIDs, order.ID)

		for _, l := range lines {
			l.OrderID = order.ID
			saved, err := s.store.Orders().AddOrderLine(ctx, l)
			s.Require().NoError(err)
			s.NotZero(saved.ID)
		}
	}

	got, err := s.store.Orders().GetOrder(ctx, orderIDs[0])
	s.Require().NoError(err)
	s.Equal(user.ID, got.UserID)
	s.Equal(models.OrderStatusPending, got.Status)
	s.True(product.Price.Mul(decimal.NewFromInt(2)).Equal(got.Total))

	lines, err := s.store.Orders().ListOrderLines(ctx, orderIDs[0])
	s.Require().NoError(err)
	s.Require().Len(lines, 1)
	s.Equal(2, lines[0].Quantity)
	s.True(product.Price.Equal(lines[0].Price.UnitPrice))

	history, err := s.store.Orders().ListOrdersByUser(ctx, user.ID)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(orderIDs[1], history[0].ID, "newest first")

	history, err = s.store.Orders().ListOrdersByUser(ctx, other.ID)
	s.Require().NoError(err)
	s.Empty(history)

	_, err = s.store.Orders().GetOrder(ctx, orderIDs[1]+1000)
	s.ErrorIs(err, port.ErrNotFound)

	n, err := s.store.Orders().CountOrders(ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *Suite) TestOrderLinesSurviveProductDeletion() {
	ctx := s.T().Context()
	user := s.createUser(gofakeit.Email(), false)
	product, err := s.store.Products().CreateProduct(ctx, randomProduct())
	s.Require().NoError(err)

	order, err := s.store.Orders().CreateOrder(ctx, models.Order{UserID: user.ID, Total: product.Price})
	s.Require().NoError(err)
	_, err = s.store.Orders().AddOrderLine(ctx, models.OrderLine{
		OrderID: order.ID, ProductID: product.ID, Quantity: 1, Price: models.SnapshotPrice(product),
	})
	s.Require().NoError(err)

	s.Require().NoError(s.store.Products().DeleteProduct(ctx, product.ID))

	lines, err := s.store.Orders().ListOrderLines(ctx, order.ID)
	s.Require().NoError(err)
	s.Len(lines, 1)
}

func (s *Suite) TestInTx() {
	ctx := s.T().Context()
	user := s.createUser(gofakeit.Email(), false)

	s.Run("error rolls back", func() {
		err := s.store.InTx(ctx, func(tx port.Store) error {
			order, err := tx.Orders().CreateOrder(ctx, models.Order{UserID: user.ID, Total: decimal.NewFromInt(1)})
			if err != nil {
				return err
			}
			if _, err := tx.Orders().AddOrderLine(ctx, models.OrderLine{OrderID: order.ID, ProductID: 1, Quantity: 1}); err != nil {
				return err
			}
			return errAbort
		})
		s.ErrorIs(err, errAbort)

		n, err := s.store.Orders().CountOrders(ctx)
		s.Require().NoError(err)
		s.Zero(n)
	})

	s.Run("panic rolls back", func() {
		before, err := s.store.Orders().CountOrders(ctx)
		s.Require().NoError(err)

		s.Require().Panics(func() {
			_ = s.store.InTx(ctx, func(tx port.Store) error {
				if _, err := tx.Orders().CreateOrder(ctx, models.Order{UserID: user.ID, Total: decimal.NewFromInt(1)}); err != nil {
					return err
				}
				panic("boom")
			})
		})

		after, err := s.store.Orders().CountOrders(ctx)
		s.Require().NoError(err)
		s.Equal(before, after)

		// the store is still usable
		s.NoError(s.store.InTx(ctx, func(tx port.Store) error { return nil }))
	})

	s.Run("nil commits", func() {
		var orderID int64
		err := s.store.InTx(ctx, func(tx port.Store) error {
			order, err := tx.Orders().CreateOrder(ctx, models.Order{UserID: user.ID, Total: decimal.NewFromInt(1)})
			orderID = order.ID
			return err
		})
		s.Require().NoError(err)

		_, err = s.store.Orders().GetOrder(ctx, orderID)
		s.NoError(err)
	})

	s.Run("nested joins the outer transaction", func() {
		before, err := s.store.Orders().CountOrders(ctx)
		s.Require().NoError(err)

		err = s.store.InTx(ctx, func(tx port.Store) error {
			err := tx.InTx(ctx, func(inner port.Store) error {
				_, err := inner.Orders().CreateOrder(ctx, models.Order{UserID: user.ID, Total: decimal.NewFromInt(1)})
				return err
			})
			if err != nil {
				return err
			}
			return errAbort
		})
		s.ErrorIs(err, errAbort)

		after, err := s.store.Orders().CountOrders(ctx)
		s.Require().NoError(err)
		s.Equal(before, after)
	})
}
