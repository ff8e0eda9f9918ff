package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/port"
)

// SeedOptions controls the first-run data written by Seed.
type SeedOptions struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
	Catalog       bool
}

var sampleProducts = []models.Product{
	{Name: "Smartphone Samsung", Price: decimal.RequireFromString("899.99"), Category: "Eletrônicos", Description: "Smartphone com 128GB"},
	{Name: "Notebook Dell", Price: decimal.RequireFromString("2499.99"), Category: "Eletrônicos", Description: "Notebook i5 8GB RAM"},
	{Name: "Camiseta Básica", Price: decimal.RequireFromString("29.99"), Category: "Roupas", Description: "Camiseta 100% algodão"},
	{Name: "Tênis Esportivo", Price: decimal.RequireFromString("199.99"), Category: "Calçados", Description: "Tênis para corrida"},
	{Name: "Livro Python", Price: decimal.RequireFromString("59.99"), Category: "Livros", Description: "Aprenda Python do zero"},
	{Name: "Fone Bluetooth", Price: decimal.RequireFromString("149.99"), Category: "Eletrônicos", Description: "Fone sem fio com cancelamento de ruído"},
}

// Seed creates the admin account if its email is unused and, when
// opts.Catalog is set, fills an empty catalog with sample products.
// Running it again is a no-op.
func Seed(ctx context.Context, store port.Store, opts SeedOptions) error {
	return store.InTx(ctx, func(tx port.Store) error {
		if opts.AdminEmail != "" {
			if err := seedAdmin(ctx, tx, opts); err != nil {
				return err
			}
		}
		if opts.Catalog {
			return seedCatalog(ctx, tx)
		}
		return nil
	})
}

func seedAdmin(ctx context.Context, tx port.Store, opts SeedOptions) error {
	email := strings.ToLower(strings.TrimSpace(opts.AdminEmail))

	_, err := tx.Users().GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, port.ErrNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	var password models.Password
	if err := password.Set(opts.AdminPassword); err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = tx.Users().CreateUser(ctx, models.User{
		Name:         opts.AdminName,
		Email:        email,
		PasswordHash: password.Hash,
		IsAdmin:      true,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	log.Printf("Seeded admin account %s", email)
	return nil
}

func seedCatalog(ctx context.Context, tx port.Store) error {
	existing, err := tx.Products().ListProducts(ctx, models.ProductFilter{})
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range sampleProducts {
		p.Image = models.DefaultProductImage
		if _, err := tx.Products().CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("create sample product %q: %w", p.Name, err)
		}
	}

	log.Printf("Seeded %d sample products", len(sampleProducts))
	return nil
}
