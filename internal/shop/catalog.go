package shop

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/port"
)

// Catalog is the read side of the product store.
type Catalog struct {
	Store port.Store
}

// Listing is the storefront index: the filtered products plus every
// category present in the catalog.
type Listing struct {
	Products   []models.Product `json:"products"`
	Categories []string         `json:"categories"`
}

func (c *Catalog) List(ctx context.Context, filter models.ProductFilter) (Listing, error) {
	products, err := c.Store.Products().ListProducts(ctx, filter)
	if err != nil {
		return Listing{}, fmt.Errorf("list products: %w", err)
	}
	categories, err := c.Store.Products().ListCategories(ctx)
	if err != nil {
		return Listing{}, fmt.Errorf("list categories: %w", err)
	}
	return Listing{Products: products, Categories: categories}, nil
}

func (c *Catalog) Get(ctx context.Context, id int64) (models.Product, error) {
	return c.Store.Products().GetProduct(ctx, id)
}

// ProductInput holds the editable fields of a product. An empty Image keeps
// the current image on update and uses the placeholder on create.
type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	Category    string
	Description string
	Image       string
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" {
		return fmt.Errorf("%w: name and category are required", ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}

// CatalogEditor is the admin write side of the product store. Callers are
// expected to have passed Identity.VerifyAdmin.
type CatalogEditor struct {
	Store port.Store
}

func (e *CatalogEditor) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	if err := in.validate(); err != nil {
		return models.Product{}, err
	}
	image := in.Image
	if image == "" {
		image = models.DefaultProductImage
	}

	return e.Store.Products().CreateProduct(ctx, models.Product{
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		Image:       image,
		Description: in.Description,
	})
}

// Update replaces the editable fields of product id.
func (e *CatalogEditor) Update(ctx context.Context, id int64, in ProductInput) (models.Product, error) {
	if err := in.validate(); err != nil {
		return models.Product{}, err
	}

	var updated models.Product
	err := e.Store.InTx(ctx, func(tx port.Store) error {
		current, err := tx.Products().GetProduct(ctx, id)
		if err != nil {
			return err
		}

		current.Name = strings.TrimSpace(in.Name)
		current.Price = in.Price
		current.Category = strings.TrimSpace(in.Category)
		current.Description = in.Description
		if in.Image != "" {
			current.Image = in.Image
		}

		if err := tx.Products().UpdateProduct(ctx, current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	return updated, err
}

func (e *CatalogEditor) Delete(ctx context.Context, id int64) error {
	return e.Store.Products().DeleteProduct(ctx, id)
}

// Dashboard is the admin overview.
type Dashboard struct {
	Products []models.Product `json:"products"`
	Users    int              `json:"users"`
	Orders   int              `json:"orders"`
}

func (e *CatalogEditor) Dashboard(ctx context.Context) (Dashboard, error) {
	products, err := e.Store.Products().ListProducts(ctx, models.ProductFilter{})
	if err != nil {
		return Dashboard{}, fmt.Errorf("list products: %w", err)
	}
	users, err := e.Store.Users().CountUsers(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("count users: %w", err)
	}
	orders, err := e.Store.Orders().CountOrders(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("count orders: %w", err)
	}
	return Dashboard{Products: products, Users: users, Orders: orders}, nil
}
