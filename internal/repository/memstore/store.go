// Package memstore keeps the whole catalog, identity and order data in
// process memory. It backs DB_DRIVER=memory and the service-level tests.
package memstore

import (
	"context"
	"maps"
	"sync"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/port"
)

type state struct {
	products map[int64]models.Product
	users    map[int64]models.User
	orders   map[int64]models.Order
	lines    map[int64]models.OrderLine

	lastProductID int64
	lastUserID    int64
	lastOrderID   int64
	lastLineID    int64
}

func (s *state) clone() *state {
	c := *s
	c.products = maps.Clone(s.products)
	c.users = maps.Clone(s.users)
	c.orders = maps.Clone(s.orders)
	c.lines = maps.Clone(s.lines)
	return &c
}

// Store is the in-memory implementation of port.Store.
//
// InTx holds the store lock for the whole callback and works on a private
// copy of the data, published only when the callback succeeds. The callback
// must use the Store it is given, not the outer one.
type Store struct {
	mu   *sync.Mutex
	st   *state
	inTx bool
}

func New() *Store {
	return &Store{
		mu: &sync.Mutex{},
		st: &state{
			products: map[int64]models.Product{},
			users:    map[int64]models.User{},
			orders:   map[int64]models.Order{},
			lines:    map[int64]models.OrderLine{},
		},
	}
}

func (s *Store) Products() port.ProductRepository { return productRepository{s} }
func (s *Store) Users() port.UserRepository       { return userRepository{s} }
func (s *Store) Orders() port.OrderRepository     { return orderRepository{s} }

func (s *Store) InTx(ctx context.Context, fn func(tx port.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &Store{mu: s.mu, st: s.st.clone(), inTx: true}
	if err := fn(tx); err != nil {
		return err
	}

	s.st = tx.st
	return nil
}

// with runs fn with exclusive access to the current state.
func (s *Store) with(fn func(st *state)) {
	if !s.inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn(s.st)
}
