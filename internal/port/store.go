package port

import (
	"context"
	"errors"

	"github.com/01moynul/storefront-golang/internal/models"
)

var (
	// ErrNotFound is returned when a lookup by id or unique key matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate key")
)

type ProductRepository interface {
	GetProduct(ctx context.Context, id int64) (models.Product, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, p models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

type UserRepository interface {
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	CountUsers(ctx context.Context) (int, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, o models.Order) (models.Order, error)
	AddOrderLine(ctx context.Context, line models.OrderLine) (models.OrderLine, error)
	GetOrder(ctx context.Context, id int64) (models.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error)
	ListOrderLines(ctx context.Context, orderID int64) ([]models.OrderLine, error)
	CountOrders(ctx context.Context) (int, error)
}

// Store groups the repositories of one backing database.
type Store interface {
	Products() ProductRepository
	Users() UserRepository
	Orders() OrderRepository

	// InTx runs fn against a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	// Calling InTx on a Store that is already transactional reuses it.
	InTx(ctx context.Context, fn func(tx Store) error) error
}
