package mysqlstore_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/01moynul/storefront-golang/internal/database"
	"github.com/01moynul/storefront-golang/internal/port"
	"github.com/01moynul/storefront-golang/internal/repository/mysqlstore"
	"github.com/01moynul/storefront-golang/internal/repository/storetest"
)

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	ctx := t.Context()

	container, err := tcmysql.Run(ctx, "mysql:8.4",
		tcmysql.WithDatabase("storefront"),
		tcmysql.WithUsername("storefront"),
		tcmysql.WithPassword("storefront"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := database.OpenMySQL(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.InitMySQLSchema(ctx, db))
	// running it twice must be harmless
	require.NoError(t, database.InitMySQLSchema(ctx, db))
	return db
}

func truncate(ctx context.Context, db *sql.DB) error {
	for _, table := range []string{"order_items", "orders", "products", "users"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func TestStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a MySQL container")
	}

	db := startMySQL(t)

	suite.Run(t, &storetest.Suite{
		Open: func(ctx context.Context) (port.Store, error) {
			if err := truncate(ctx, db); err != nil {
				return nil, err
			}
			return mysqlstore.New(db), nil
		},
	})
}
