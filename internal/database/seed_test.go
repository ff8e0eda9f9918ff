package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/storefront-golang/internal/database"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/repository/memstore"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := t.Context()
	store := memstore.New()
	opts := database.SeedOptions{
		AdminName:     "Administrador",
		AdminEmail:    "Admin@Admin.com",
		AdminPassword: "admin123",
		Catalog:       true,
	}

	require.NoError(t, database.Seed(ctx, store, opts))
	require.NoError(t, database.Seed(ctx, store, opts))

	users, err := store.Users().CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, users)

	admin, err := store.Users().GetUserByEmail(ctx, "admin@admin.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	password := models.Password{Hash: admin.PasswordHash}
	ok, err := password.Matches("admin123")
	require.NoError(t, err)
	assert.True(t, ok)

	products, err := store.Products().ListProducts(ctx, models.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 6)
	for _, p := range products {
		assert.Equal(t, models.DefaultProductImage, p.Image)
	}
}

func TestSeedSkipsCatalogWhenDisabled(t *testing.T) {
	ctx := t.Context()
	store := memstore.New()

	require.NoError(t, database.Seed(ctx, store, database.SeedOptions{}))

	products, err := store.Products().ListProducts(ctx, models.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)

	users, err := store.Users().CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, users)
}
