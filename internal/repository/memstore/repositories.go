package memstore

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/port"
)

type productRepository struct{ s *Store }

func (r productRepository) GetProduct(_ context.Context, id int64) (p models.Product, err error) {
	r.s.with(func(st *state) {
		var ok bool
		if p, ok = st.products[id]; !ok {
			err = fmt.Errorf("product[%d]: %w", id, port.ErrNotFound)
		}
	})
	return p, err
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (r productRepository) ListProducts(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products := []models.Product{}
	r.s.with(func(st *state) {
		for _, p := range st.products {
			if filter.Category != "" && !containsFold(p.Category, filter.Category) {
				continue
			}
			if filter.Name != "" && !containsFold(p.Name, filter.Name) {
				continue
			}
			products = append(products, p)
		}
	})
	slices.SortFunc(products, func(a, b models.Product) int { return int(a.ID - b.ID) })
	return products, nil
}

func (r productRepository) ListCategories(_ context.Context) ([]string, error) {
	categories := []string{}
	r.s.with(func(st *state) {
		for _, p := range st.products {
			categories = append(categories, p.Category)
		}
	})
	slices.Sort(categories)
	return slices.Compact(categories), nil
}

func (r productRepository) CreateProduct(_ context.Context, p models.Product) (models.Product, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.s.with(func(st *state) {
		st.lastProductID++
		p.ID = st.lastProductID
		st.products[p.ID] = p
	})
	return p, nil
}

func (r productRepository) UpdateProduct(_ context.Context, p models.Product) (err error) {
	r.s.with(func(st *state) {
		current, ok := st.products[p.ID]
		if !ok {
			err = fmt.Errorf("update product[%d]: %w", p.ID, port.ErrNotFound)
			return
		}
		p.CreatedAt = current.CreatedAt
		st.products[p.ID] = p
	})
	return err
}

func (r productRepository) DeleteProduct(_ context.Context, id int64) (err error) {
	r.s.with(func(st *state) {
		if _, ok := st.products[id]; !ok {
			err = fmt.Errorf("delete product[%d]: %w", id, port.ErrNotFound)
			return
		}
		delete(st.products, id)
	})
	return err
}

type userRepository struct{ s *Store }

func (r userRepository) GetUser(_ context.Context, id int64) (u models.User, err error) {
	r.s.with(func(st *state) {
		var ok bool
		if u, ok = st.users[id]; !ok {
			err = fmt.Errorf("user[%d]: %w", id, port.ErrNotFound)
		}
	})
	return u, err
}

func (r userRepository) GetUserByEmail(_ context.Context, email string) (u models.User, err error) {
	err = fmt.Errorf("user by email: %w", port.ErrNotFound)
	r.s.with(func(st *state) {
		for _, candidate := range st.users {
			if candidate.Email == email {
				u, err = candidate, nil
				return
			}
		}
	})
	return u, err
}

func (r userRepository) CreateUser(_ context.Context, u models.User) (_ models.User, err error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.s.with(func(st *state) {
		for _, existing := range st.users {
			if existing.Email == u.Email {
				err = fmt.Errorf("%w: users.email", port.ErrDuplicate)
				return
			}
		}
		st.lastUserID++
		u.ID = st.lastUserID
		st.users[u.ID] = u
	})
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r userRepository) CountUsers(_ context.Context) (n int, _ error) {
	r.s.with(func(st *state) { n = len(st.users) })
	return n, nil
}

type orderRepository struct{ s *Store }

func (r orderRepository) CreateOrder(_ context.Context, o models.Order) (models.Order, error) {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	r.s.with(func(st *state) {
		st.lastOrderID++
		o.ID = st.lastOrderID
		st.orders[o.ID] = o
	})
	return o, nil
}

func (r orderRepository) AddOrderLine(_ context.Context, line models.OrderLine) (_ models.OrderLine, err error) {
	r.s.with(func(st *state) {
		if _, ok := st.orders[line.OrderID]; !ok {
			err = fmt.Errorf("order item for order[%d]: %w", line.OrderID, port.ErrNotFound)
			return
		}
		st.lastLineID++
		line.ID = st.lastLineID
		st.lines[line.ID] = line
	})
	if err != nil {
		return models.OrderLine{}, err
	}
	return line, nil
}

func (r orderRepository) GetOrder(_ context.Context, id int64) (o models.Order, err error) {
	r.s.with(func(st *state) {
		var ok bool
		if o, ok = st.orders[id]; !ok {
			err = fmt.Errorf("order[%d]: %w", id, port.ErrNotFound)
		}
	})
	return o, err
}

func (r orderRepository) ListOrdersByUser(_ context.Context, userID int64) ([]models.Order, error) {
	orders := []models.Order{}
	r.s.with(func(st *state) {
		for _, o := range st.orders {
			if o.UserID == userID {
				orders = append(orders, o)
			}
		}
	})
	// newest first
	slices.SortFunc(orders, func(a, b models.Order) int { return int(b.ID - a.ID) })
	return orders, nil
}

func (r orderRepository) ListOrderLines(_ context.Context, orderID int64) ([]models.OrderLine, error) {
	lines := []models.OrderLine{}
	r.s.with(func(st *state) {
		for _, l := range st.lines {
			if l.OrderID == orderID {
				lines = append(lines, l)
			}
		}
	})
	slices.SortFunc(lines, func(a, b models.OrderLine) int { return int(a.ID - b.ID) })
	return lines, nil
}

func (r orderRepository) CountOrders(_ context.Context) (n int, _ error) {
	r.s.with(func(st *state) { n = len(st.orders) })
	return n, nil
}
